package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

func TestWriteJSON(t *testing.T) {
	d := dictionary.New(nil)
	d.Set("café", dictionary.Entry{"Meaning": {"coffee & more"}})

	path := filepath.Join(t.TempDir(), "dictionary.json")
	require.NoError(t, WriteJSON(path, d))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
    "café": {
        "Type": [],
        "Meaning": [
            "coffee \u0026 more"
        ],
        "From": [],
        "Explanation": [],
        "To": []
    }
}
`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")

	back, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name       string
		contents   string
		wantLemmas []string
		wantErr    bool
	}{
		{
			name:       "keeps file order",
			contents:   `{"b": {"Type": ["x"]}, "a": {}}`,
			wantLemmas: []string{"b", "a"},
		},
		{
			name:       "blank file is an empty dictionary",
			contents:   "\n",
			wantLemmas: nil,
		},
		{
			name:     "malformed file",
			contents: `{"a":`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dictionary.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o644))

			got, err := ReadJSON(path)
			if tt.wantErr {
				var convErr *dictionary.ConversionError
				assert.ErrorAs(t, err, &convErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLemmas, got.Lemmas())
		})
	}
}

func TestReadJSON_MissingFile(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJSONToSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "dictionary.json")
	sheetPath := filepath.Join(dir, "dictionary.xlsx")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"run": {"Type": ["verb"], "Meaning": ["to move fast", "to operate"]}}`), 0o644))

	d, err := JSONToSpreadsheet(jsonPath, sheetPath, DefaultSheetName)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	assert.Equal(t, [][]string{
		{"Lemma", "Type", "Meaning", "From", "Explanation", "To"},
		{"run", "verb", "to move fast; to operate"},
	}, readSheetRows(t, sheetPath, DefaultSheetName))

	back, err := SpreadsheetToJSON(sheetPath, DefaultSheetName, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestJSONToSpreadsheet_HandEditedValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantRow  []string
	}{
		{
			name:     "string value",
			contents: `{"run": {"Type": "verb"}}`,
			wantRow:  []string{"run", "verb"},
		},
		{
			name:     "number value",
			contents: `{"run": {"Type": ["verb"], "Meaning": 3}}`,
			wantRow:  []string{"run", "verb", "3"},
		},
		{
			name:     "bool value",
			contents: `{"run": {"Type": false}}`,
			wantRow:  []string{"run", "false"},
		},
		{
			name:     "null value",
			contents: `{"run": {"Type": null, "Meaning": ["to move fast"]}}`,
			wantRow:  []string{"run", "", "to move fast"},
		},
		{
			name:     "list with numbers",
			contents: `{"run": {"Type": [3, "verb"]}}`,
			wantRow:  []string{"run", "3; verb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			jsonPath := filepath.Join(dir, "dictionary.json")
			sheetPath := filepath.Join(dir, "dictionary.xlsx")
			require.NoError(t, os.WriteFile(jsonPath, []byte(tt.contents), 0o644))

			_, err := JSONToSpreadsheet(jsonPath, sheetPath, DefaultSheetName)
			require.NoError(t, err)

			rows := readSheetRows(t, sheetPath, DefaultSheetName)
			require.Len(t, rows, 2)
			assert.Equal(t, tt.wantRow, rows[1])
		})
	}
}
