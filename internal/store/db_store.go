package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbook/internal/converter"
	"github.com/at-ishikawa/wordbook/internal/database"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

// EntryRecord is a row of the lexicon_entries table.
type EntryRecord struct {
	ID     int64           `db:"id"`
	Lemma  string          `db:"lemma"`
	Fields json.RawMessage `db:"fields"`
}

// DBStore implements Repository on top of MySQL. Insertion order follows the row id.
type DBStore struct {
	db              *sqlx.DB
	spreadsheetPath string
	sheetName       string
	pingAttempts    uint
	logger          *slog.Logger
}

// NewDBStore creates a DBStore that exports to the given spreadsheet.
func NewDBStore(db *sqlx.DB, spreadsheetPath, sheetName string, logger *slog.Logger) *DBStore {
	if sheetName == "" {
		sheetName = converter.DefaultSheetName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DBStore{
		db:              db,
		spreadsheetPath: spreadsheetPath,
		sheetName:       sheetName,
		pingAttempts:    database.DefaultPingAttempts,
		logger:          logger,
	}
}

// Load verifies the database is reachable.
func (s *DBStore) Load(ctx context.Context) error {
	if err := database.Ping(ctx, s.db, s.pingAttempts); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Connected to dictionary database")
	return nil
}

// FindAll returns every row ordered by insertion.
func (s *DBStore) FindAll(ctx context.Context) ([]EntryRecord, error) {
	var records []EntryRecord
	if err := s.db.SelectContext(ctx, &records, "SELECT id, lemma, fields FROM lexicon_entries ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load all lexicon entries: %w", err)
	}
	return records, nil
}

func (s *DBStore) dictionary(ctx context.Context) (*dictionary.Dictionary, error) {
	records, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	d := dictionary.New(nil)
	for _, r := range records {
		var entry dictionary.Entry
		if err := json.Unmarshal(r.Fields, &entry); err != nil {
			return nil, fmt.Errorf("decode fields of %q: %w", r.Lemma, err)
		}
		d.Set(r.Lemma, entry)
	}
	return d, nil
}

// Snapshot reads the whole table.
func (s *DBStore) Snapshot(ctx context.Context) (Snapshot, error) {
	d, err := s.dictionary(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return newSnapshot(d), nil
}

// Upsert inserts or replaces lemma. A replaced row keeps its id and so its position.
func (s *DBStore) Upsert(ctx context.Context, lemma string, entry dictionary.Entry) error {
	normalized := dictionary.New(nil)
	if err := validateEntry(normalized, lemma, entry); err != nil {
		return err
	}
	normalized.Set(lemma, entry)
	stored, _ := normalized.Get(lemma)

	fields, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode fields of %q: %w", lemma, err)
	}
	return s.BatchUpsert(ctx, []*EntryRecord{{Lemma: lemma, Fields: fields}})
}

// BatchUpsert inserts or updates multiple rows in one transaction.
func (s *DBStore) BatchUpsert(ctx context.Context, records []*EntryRecord) error {
	if len(records) == 0 {
		return nil
	}
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, r := range records {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO lexicon_entries (lemma, fields) VALUES (?, ?) ON DUPLICATE KEY UPDATE fields = VALUES(fields)",
				r.Lemma, r.Fields,
			); err != nil {
				return fmt.Errorf("upsert lexicon entry %q: %w", r.Lemma, err)
			}
		}
		return nil
	})
}

// Remove deletes lemma, returning dictionary.ErrNotFound when no row matched.
func (s *DBStore) Remove(ctx context.Context, lemma string) error {
	if lemma == "" {
		return fmt.Errorf("%w: lemma is required", dictionary.ErrInvalidEntry)
	}
	result, err := s.db.ExecContext(ctx, "DELETE FROM lexicon_entries WHERE lemma = ?", lemma)
	if err != nil {
		return fmt.Errorf("delete lexicon entry %q: %w", lemma, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", dictionary.ErrNotFound, lemma)
	}
	return nil
}

// ExportSnapshot writes the table to the spreadsheet.
func (s *DBStore) ExportSnapshot(ctx context.Context) error {
	d, err := s.dictionary(ctx)
	if err != nil {
		return fmt.Errorf("export spreadsheet: %w", err)
	}
	if err := converter.WriteSpreadsheet(d, s.spreadsheetPath, s.sheetName); err != nil {
		return fmt.Errorf("export spreadsheet: %w", err)
	}
	s.logger.InfoContext(ctx, "Exported dictionary to spreadsheet",
		"spreadsheet", s.spreadsheetPath, "entries", d.Len())
	return nil
}
