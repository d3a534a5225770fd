package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

const jsonIndent = "    "

// ReadJSON loads a dictionary from a JSON file.
func ReadJSON(path string) (*dictionary.Dictionary, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	d := dictionary.New(nil)
	if len(bytes.TrimSpace(contents)) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(contents, d); err != nil {
		return nil, &dictionary.ConversionError{Path: path, Err: err}
	}
	return d, nil
}

// EncodeJSON renders d the way WriteJSON stores it.
func EncodeJSON(d *dictionary.Dictionary) ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", jsonIndent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteJSON replaces the JSON file at path with d.
// The file is written to a temporary sibling first and renamed into place.
func WriteJSON(path string, d *dictionary.Dictionary) error {
	contents, err := EncodeJSON(d)
	if err != nil {
		return &dictionary.ConversionError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}

// SpreadsheetToJSON regenerates the JSON file from the spreadsheet and returns the dictionary.
func SpreadsheetToJSON(spreadsheetPath, sheet, jsonPath string) (*dictionary.Dictionary, error) {
	d, err := ReadSpreadsheet(spreadsheetPath, sheet)
	if err != nil {
		return nil, err
	}
	if err := WriteJSON(jsonPath, d); err != nil {
		return nil, err
	}
	return d, nil
}

// JSONToSpreadsheet rewrites the spreadsheet from the JSON file on disk.
func JSONToSpreadsheet(jsonPath, spreadsheetPath, sheet string) (*dictionary.Dictionary, error) {
	d, err := ReadJSON(jsonPath)
	if err != nil {
		return nil, err
	}
	if err := WriteSpreadsheet(d, spreadsheetPath, sheet); err != nil {
		return nil, err
	}
	return d, nil
}
