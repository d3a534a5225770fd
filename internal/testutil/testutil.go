// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/converter"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

// DictionaryFiles are the paths written by SetupTestConfig.
type DictionaryFiles struct {
	ConfigPath      string
	JSONPath        string
	SpreadsheetPath string
}

// FixtureOption seeds the dictionary files created by SetupTestConfig.
type FixtureOption func(t *testing.T, files DictionaryFiles)

// WithSpreadsheet writes d to the configured spreadsheet.
func WithSpreadsheet(d *dictionary.Dictionary) FixtureOption {
	return func(t *testing.T, files DictionaryFiles) {
		require.NoError(t, converter.WriteSpreadsheet(d, files.SpreadsheetPath, converter.DefaultSheetName))
	}
}

// WithJSON writes d to the configured JSON file.
func WithJSON(d *dictionary.Dictionary) FixtureOption {
	return func(t *testing.T, files DictionaryFiles) {
		require.NoError(t, converter.WriteJSON(files.JSONPath, d))
	}
}

// SetupTestConfig creates a config file whose dictionary files live in tmpDir.
// No dictionary file exists unless an option creates it.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...FixtureOption) DictionaryFiles {
	t.Helper()

	files := DictionaryFiles{
		ConfigPath:      filepath.Join(tmpDir, "config.yml"),
		JSONPath:        filepath.Join(tmpDir, "dictionary.json"),
		SpreadsheetPath: filepath.Join(tmpDir, "dictionary.xlsx"),
	}
	configContent := fmt.Sprintf(`dictionary:
  json_file: %s
  spreadsheet_file: %s
  sheet_name: %s
`,
		files.JSONPath,
		files.SpreadsheetPath,
		converter.DefaultSheetName,
	)
	require.NoError(t, os.WriteFile(files.ConfigPath, []byte(configContent), 0644))

	for _, opt := range opts {
		opt(t, files)
	}
	return files
}

// SampleDictionary returns two verbs, one of them with several meanings.
func SampleDictionary() *dictionary.Dictionary {
	d := dictionary.New(nil)
	d.Set("run", dictionary.Entry{
		"Type":    {"verb"},
		"Meaning": {"to move fast", "to operate"},
	})
	d.Set("walk", dictionary.Entry{
		"Type":        {"verb"},
		"Explanation": {"slower than run"},
	})
	return d
}
