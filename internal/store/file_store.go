package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/at-ishikawa/wordbook/internal/converter"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

// FileConfig locates the files backing a FileStore.
type FileConfig struct {
	JSONPath        string
	SpreadsheetPath string
	SheetName       string
}

// FileStore keeps the dictionary in memory and flushes it to a JSON file on every change.
// The spreadsheet is only read by Load and written by ExportSnapshot.
type FileStore struct {
	cfg    FileConfig
	logger *slog.Logger

	mu   sync.Mutex
	dict *dictionary.Dictionary
}

// NewFileStore creates a FileStore holding an empty dictionary until Load is called.
func NewFileStore(cfg FileConfig, logger *slog.Logger) *FileStore {
	if cfg.SheetName == "" {
		cfg.SheetName = converter.DefaultSheetName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		cfg:    cfg,
		logger: logger,
		dict:   dictionary.New(nil),
	}
}

// Load regenerates the JSON file from the spreadsheet and replaces the in-memory dictionary.
// On failure the store falls back to an empty dictionary and an empty JSON file; the
// returned error describes what went wrong, but the store is usable either way.
func (s *FileStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := converter.SpreadsheetToJSON(s.cfg.SpreadsheetPath, s.cfg.SheetName, s.cfg.JSONPath)
	if err == nil {
		s.dict = d
		s.logger.InfoContext(ctx, "Loaded dictionary from spreadsheet",
			"spreadsheet", s.cfg.SpreadsheetPath, "entries", d.Len())
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		s.logger.WarnContext(ctx, "Spreadsheet not found, starting with an empty dictionary",
			"spreadsheet", s.cfg.SpreadsheetPath)
	} else {
		s.logger.ErrorContext(ctx, "Failed to load spreadsheet, starting with an empty dictionary",
			"spreadsheet", s.cfg.SpreadsheetPath, "err", err)
	}

	s.dict = dictionary.New(nil)
	if writeErr := converter.WriteJSON(s.cfg.JSONPath, s.dict); writeErr != nil {
		return errors.Join(fmt.Errorf("load spreadsheet: %w", err), fmt.Errorf("write empty dictionary: %w", writeErr))
	}
	return fmt.Errorf("load spreadsheet: %w", err)
}

// Snapshot returns a copy of the in-memory dictionary.
func (s *FileStore) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newSnapshot(s.dict.Clone()), nil
}

// Upsert inserts or replaces lemma and persists the whole dictionary.
// If persisting fails the in-memory change is kept.
func (s *FileStore) Upsert(ctx context.Context, lemma string, entry dictionary.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateEntry(s.dict, lemma, entry); err != nil {
		return err
	}
	s.dict.Set(lemma, entry)
	if err := s.persist(); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Saved entry", "lemma", lemma)
	return nil
}

// Remove deletes lemma and persists the whole dictionary.
func (s *FileStore) Remove(ctx context.Context, lemma string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lemma == "" {
		return fmt.Errorf("%w: lemma is required", dictionary.ErrInvalidEntry)
	}
	if !s.dict.Delete(lemma) {
		return fmt.Errorf("%w: %q", dictionary.ErrNotFound, lemma)
	}
	if err := s.persist(); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Deleted entry", "lemma", lemma)
	return nil
}

// ExportSnapshot writes the spreadsheet from the JSON file on disk, not from memory,
// so edits made to the file outside the store are exported too.
func (s *FileStore) ExportSnapshot(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := converter.JSONToSpreadsheet(s.cfg.JSONPath, s.cfg.SpreadsheetPath, s.cfg.SheetName)
	if err != nil {
		return fmt.Errorf("export spreadsheet: %w", err)
	}
	s.logger.InfoContext(ctx, "Exported dictionary to spreadsheet",
		"spreadsheet", s.cfg.SpreadsheetPath, "entries", d.Len())
	return nil
}

func (s *FileStore) persist() error {
	if err := converter.WriteJSON(s.cfg.JSONPath, s.dict); err != nil {
		return fmt.Errorf("persist dictionary: %w", err)
	}
	return nil
}
