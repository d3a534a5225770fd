package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

func writeWorkbook(t *testing.T, sheet string, cells map[string]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for cell, value := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, value))
	}

	path := filepath.Join(t.TempDir(), "dictionary.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func readSheetRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestReadSpreadsheet(t *testing.T) {
	tests := []struct {
		name       string
		cells      map[string]any
		wantLemmas []string
		want       map[string]dictionary.Entry
	}{
		{
			name: "splits text cells and trims parts",
			cells: map[string]any{
				"A1": "Lemma", "B1": "Type", "C1": "Meaning",
				"A2": "run", "B2": "verb", "C2": "to move fast ;to operate",
			},
			wantLemmas: []string{"run"},
			want: map[string]dictionary.Entry{
				"run": {
					"Type":        {"verb"},
					"Meaning":     {"to move fast", "to operate"},
					"From":        {},
					"Explanation": {},
					"To":          {},
				},
			},
		},
		{
			name: "numeric cell becomes one element and empty cell becomes none",
			cells: map[string]any{
				"A1": "Lemma", "B1": "Type", "C1": "Meaning", "D1": "From",
				"A2": "three", "C2": 3, "D2": "Latin",
			},
			wantLemmas: []string{"three"},
			want: map[string]dictionary.Entry{
				"three": {
					"Type":        {},
					"Meaning":     {"3"},
					"From":        {"Latin"},
					"Explanation": {},
					"To":          {},
				},
			},
		},
		{
			name: "rows without lemma are skipped and order is kept",
			cells: map[string]any{
				"A1": "Lemma", "B1": "Type",
				"A2": "b", "B2": "noun",
				"B3": "orphan",
				"A4": "a", "B4": "verb",
			},
			wantLemmas: []string{"b", "a"},
			want: map[string]dictionary.Entry{
				"b": {"Type": {"noun"}, "Meaning": {}, "From": {}, "Explanation": {}, "To": {}},
				"a": {"Type": {"verb"}, "Meaning": {}, "From": {}, "Explanation": {}, "To": {}},
			},
		},
		{
			name: "extra header columns are kept",
			cells: map[string]any{
				"A1": "Lemma", "B1": "Note",
				"A2": "x", "B2": "a;b",
			},
			wantLemmas: []string{"x"},
			want: map[string]dictionary.Entry{
				"x": {"Type": {}, "Meaning": {}, "From": {}, "Explanation": {}, "To": {}, "Note": {"a", "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, DefaultSheetName, tt.cells)

			got, err := ReadSpreadsheet(path, DefaultSheetName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLemmas, got.Lemmas())
			for lemma, want := range tt.want {
				entry, ok := got.Get(lemma)
				require.True(t, ok, lemma)
				assert.Equal(t, want, entry)
			}
		})
	}
}

func TestReadSpreadsheet_Columns(t *testing.T) {
	tests := []struct {
		name        string
		cells       map[string]any
		wantColumns []string
		wantHeader  []string
	}{
		{
			name:        "full header",
			cells:       map[string]any{"A1": "Lemma", "B1": "Type", "C1": "Meaning", "D1": "From", "E1": "Explanation", "F1": "To"},
			wantColumns: []string{"Type", "Meaning", "From", "Explanation", "To"},
			wantHeader:  []string{"Lemma", "Type", "Meaning", "From", "Explanation", "To"},
		},
		{
			name:        "default columns missing from the header are kept",
			cells:       map[string]any{"A1": "Lemma", "B1": "Meaning"},
			wantColumns: []string{"Type", "Meaning", "From", "Explanation", "To"},
			wantHeader:  []string{"Lemma", "Type", "Meaning", "From", "Explanation", "To"},
		},
		{
			name:        "extra columns follow the defaults in sheet order",
			cells:       map[string]any{"A1": "Lemma", "B1": "Source", "C1": "Type", "D1": "Note"},
			wantColumns: []string{"Type", "Meaning", "From", "Explanation", "To", "Source", "Note"},
			wantHeader:  []string{"Lemma", "Type", "Meaning", "From", "Explanation", "To", "Source", "Note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, DefaultSheetName, tt.cells)

			got, err := ReadSpreadsheet(path, DefaultSheetName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantColumns, got.Columns())

			out := filepath.Join(t.TempDir(), "out.xlsx")
			require.NoError(t, WriteSpreadsheet(got, out, DefaultSheetName))
			assert.Equal(t, [][]string{tt.wantHeader}, readSheetRows(t, out, DefaultSheetName))
		})
	}
}

func TestReadSpreadsheet_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSpreadsheet(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultSheetName)
		require.Error(t, err)
		var convErr *dictionary.ConversionError
		assert.ErrorAs(t, err, &convErr)
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Other", map[string]any{"A1": "Lemma"})
		_, err := ReadSpreadsheet(path, DefaultSheetName)
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})
}

func TestWriteSpreadsheet(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(d *dictionary.Dictionary)
		wantRows [][]string
	}{
		{
			name:  "empty dictionary writes headers only",
			setup: func(d *dictionary.Dictionary) {},
			wantRows: [][]string{
				{"Lemma", "Type", "Meaning", "From", "Explanation", "To"},
			},
		},
		{
			name: "joins multiple values with a semicolon and space",
			setup: func(d *dictionary.Dictionary) {
				d.Set("run", dictionary.Entry{
					"Type":    {"verb"},
					"Meaning": {"to move fast", "to operate"},
				})
			},
			wantRows: [][]string{
				{"Lemma", "Type", "Meaning", "From", "Explanation", "To"},
				{"run", "verb", "to move fast; to operate"},
			},
		},
		{
			name: "absent fields leave empty cells",
			setup: func(d *dictionary.Dictionary) {
				d.Set("go", dictionary.Entry{"To": {"went"}})
			},
			wantRows: [][]string{
				{"Lemma", "Type", "Meaning", "From", "Explanation", "To"},
				{"go", "", "", "", "", "went"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dictionary.New(nil)
			tt.setup(d)
			path := filepath.Join(t.TempDir(), "out", "dictionary.xlsx")

			require.NoError(t, WriteSpreadsheet(d, path, DefaultSheetName))
			assert.Equal(t, tt.wantRows, readSheetRows(t, path, DefaultSheetName))
		})
	}
}

func TestWriteSpreadsheet_CellLimit(t *testing.T) {
	longest := strings.Repeat("é", excelize.TotalCellChars)
	tooLong := strings.Repeat("a", excelize.TotalCellChars+1)
	half := strings.Repeat("b", excelize.TotalCellChars/2+1)

	tests := []struct {
		name    string
		lemma   string
		entry   dictionary.Entry
		wantErr bool
	}{
		{
			name:  "value at the limit",
			lemma: "long",
			entry: dictionary.Entry{"Explanation": {longest}},
		},
		{
			name:    "field value over the limit",
			lemma:   "long",
			entry:   dictionary.Entry{"Explanation": {tooLong}},
			wantErr: true,
		},
		{
			name:    "joined values over the limit",
			lemma:   "long",
			entry:   dictionary.Entry{"Meaning": {half, half}},
			wantErr: true,
		},
		{
			name:    "lemma over the limit",
			lemma:   tooLong,
			entry:   dictionary.Entry{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dictionary.New(nil)
			d.Set(tt.lemma, tt.entry)
			path := filepath.Join(t.TempDir(), "dictionary.xlsx")

			err := WriteSpreadsheet(d, path, DefaultSheetName)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var convErr *dictionary.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, path, convErr.Path)
			_, statErr := os.Stat(path)
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

func TestSpreadsheetRoundTrip(t *testing.T) {
	d := dictionary.New(nil)
	d.Set("run", dictionary.Entry{
		"Type":        {"verb"},
		"Meaning":     {"to move fast", "to operate"},
		"Explanation": {"irregular"},
	})
	d.Set("Run", dictionary.Entry{"Type": {"noun"}})
	d.Set("empty", dictionary.Entry{})

	path := filepath.Join(t.TempDir(), "dictionary.xlsx")
	require.NoError(t, WriteSpreadsheet(d, path, DefaultSheetName))

	got, err := ReadSpreadsheet(path, DefaultSheetName)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestSplitValues(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, SplitValues(" a ;b; "))
	assert.Equal(t, []string{"single"}, SplitValues("single"))
	assert.Equal(t, "a; b", JoinValues([]string{"a", "b"}))
	assert.Equal(t, "", JoinValues(nil))
}
