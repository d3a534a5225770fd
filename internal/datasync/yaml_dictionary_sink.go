package datasync

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

// YAMLDictionarySink writes a dictionary to a YAML file, keeping lemma and column order.
type YAMLDictionarySink struct {
	path string
}

// NewYAMLDictionarySink creates a new YAMLDictionarySink.
func NewYAMLDictionarySink(path string) *YAMLDictionarySink {
	return &YAMLDictionarySink{path: path}
}

// WriteAll replaces the file with every entry of d.
func (s *YAMLDictionarySink) WriteAll(d *dictionary.Dictionary) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := writeYAML(s.path, d.Document()); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
