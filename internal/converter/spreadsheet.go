// Package converter translates a dictionary between its spreadsheet and JSON file representations.
package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

const (
	// DefaultSheetName is the worksheet holding the dictionary.
	DefaultSheetName = "Dictionary"

	valueSeparator = ";"
	valueJoiner    = "; "
)

// ErrSheetNotFound is returned when the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadSpreadsheet reads the named sheet of an xlsx workbook into a dictionary.
// The first column holds lemmas and the header row names the fields.
func ReadSpreadsheet(path, sheet string) (*dictionary.Dictionary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &dictionary.ConversionError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, &dictionary.ConversionError{Path: path, Err: err}
	}
	if index < 0 {
		return nil, &dictionary.ConversionError{Path: path, Err: fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &dictionary.ConversionError{Path: path, Err: fmt.Errorf("read rows of %s: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return dictionary.New(nil), nil
	}

	header := rows[0]
	var fields []string
	if len(header) > 1 {
		fields = header[1:]
	}
	d := dictionary.New(fields)

	for i, row := range rows[1:] {
		rowNumber := i + 2
		if len(row) == 0 || row[0] == "" {
			continue
		}
		lemma := row[0]

		entry := make(dictionary.Entry, len(fields))
		for j, field := range fields {
			if field == "" {
				continue
			}
			col := j + 1
			var raw string
			if col < len(row) {
				raw = row[col]
			}
			values, err := cellValues(f, sheet, col+1, rowNumber, raw)
			if err != nil {
				return nil, &dictionary.ConversionError{Path: path, Err: err}
			}
			entry[field] = values
		}
		d.Set(lemma, entry)
	}
	return d, nil
}

// cellValues converts one cell into a sequence. Text is split on ';' and trimmed,
// any other non-empty value becomes a single element, and an empty cell yields none.
func cellValues(f *excelize.File, sheet string, col, row int, raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, fmt.Errorf("cell name of (%d, %d): %w", col, row, err)
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("cell type of %s: %w", cell, err)
	}
	if !isTextCell(cellType) {
		return []string{raw}, nil
	}
	return SplitValues(raw), nil
}

func isTextCell(t excelize.CellType) bool {
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return true
	default:
		return false
	}
}

// SplitValues splits a cell on ';' and trims each part.
func SplitValues(cell string) []string {
	parts := strings.Split(cell, valueSeparator)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, strings.TrimSpace(p))
	}
	return values
}

// JoinValues joins a sequence into one cell.
func JoinValues(values []string) string {
	return strings.Join(values, valueJoiner)
}

// WriteSpreadsheet writes d to a new workbook at path, replacing any existing file.
// The header is the lemma column followed by the dictionary columns, and an empty
// dictionary produces a header-only sheet.
func WriteSpreadsheet(d *dictionary.Dictionary, path, sheet string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return &dictionary.ConversionError{Path: path, Err: fmt.Errorf("rename sheet: %w", err)}
	}

	columns := d.Columns()
	header := make([]any, 0, len(columns)+1)
	header = append(header, dictionary.LemmaColumn)
	for _, c := range columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return &dictionary.ConversionError{Path: path, Err: fmt.Errorf("write header: %w", err)}
	}

	row := 2
	for lemma, entry := range d.All() {
		if err := setCell(f, sheet, 1, row, lemma); err != nil {
			return &dictionary.ConversionError{Path: path, Err: err}
		}
		for i, c := range columns {
			if err := setCell(f, sheet, i+2, row, JoinValues(entry[c])); err != nil {
				return &dictionary.ConversionError{Path: path, Err: err}
			}
		}
		row++
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	if value == "" {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name of (%d, %d): %w", col, row, err)
	}
	// SetCellStr silently truncates longer values.
	if n := utf8.RuneCountInString(value); n > excelize.TotalCellChars {
		return fmt.Errorf("set %s: %d characters exceed the cell limit of %d", cell, n, excelize.TotalCellChars)
	}
	if err := f.SetCellStr(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
