// Package datasync copies dictionaries between the JSON file, the database and YAML.
package datasync

//go:generate mockgen -source=datasync.go -destination=../mocks/datasync/mock_datasync.go -package=mock_datasync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
	"github.com/at-ishikawa/wordbook/internal/store"
)

// LexiconRepository is the part of the database store the importer writes through.
type LexiconRepository interface {
	FindAll(ctx context.Context) ([]store.EntryRecord, error)
	BatchUpsert(ctx context.Context, records []*store.EntryRecord) error
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	New     int
	Skipped int
	Updated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes a dictionary into the database.
type Importer struct {
	repo   LexiconRepository
	writer io.Writer
}

// NewImporter creates a new Importer that reports each lemma to writer.
func NewImporter(repo LexiconRepository, writer io.Writer) *Importer {
	return &Importer{repo: repo, writer: writer}
}

// ImportDictionary inserts lemmas missing from the database. Existing lemmas are skipped
// unless opts.UpdateExisting is set and their fields differ. All writes share one transaction.
func (imp *Importer) ImportDictionary(ctx context.Context, d *dictionary.Dictionary, opts ImportOptions) (*ImportResult, error) {
	records, err := imp.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}
	existing := make(map[string]dictionary.Entry, len(records))
	for _, r := range records {
		var entry dictionary.Entry
		if err := json.Unmarshal(r.Fields, &entry); err != nil {
			return nil, fmt.Errorf("decode fields of %q > %w", r.Lemma, err)
		}
		existing[r.Lemma] = entry
	}

	var result ImportResult
	var pending []*store.EntryRecord
	for lemma, entry := range d.All() {
		current, found := existing[lemma]
		switch {
		case found && !opts.UpdateExisting:
			fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", lemma)
			result.Skipped++
			continue
		case found && equalEntries(current, entry):
			fmt.Fprintf(imp.writer, "  [SKIP]  %q (unchanged)\n", lemma)
			result.Skipped++
			continue
		case found:
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", lemma)
			result.Updated++
		default:
			fmt.Fprintf(imp.writer, "  [NEW]  %q\n", lemma)
			result.New++
		}

		fields, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("encode fields of %q > %w", lemma, err)
		}
		pending = append(pending, &store.EntryRecord{Lemma: lemma, Fields: fields})
	}

	if opts.DryRun {
		return &result, nil
	}
	if err := imp.repo.BatchUpsert(ctx, pending); err != nil {
		return nil, fmt.Errorf("BatchUpsert() > %w", err)
	}
	return &result, nil
}

func equalEntries(a, b dictionary.Entry) bool {
	return maps.EqualFunc(a, b, func(x, y []string) bool {
		return slices.Equal(x, y)
	})
}
