// Package store owns the dictionary state and its persistence lifecycle.
package store

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

//go:generate mockgen -source=repository.go -destination=../mocks/store/mock_repository.go -package=mock_store

// Repository defines operations over the dictionary regardless of the backing store.
type Repository interface {
	Load(ctx context.Context) error
	Snapshot(ctx context.Context) (Snapshot, error)
	Upsert(ctx context.Context, lemma string, entry dictionary.Entry) error
	Remove(ctx context.Context, lemma string) error
	ExportSnapshot(ctx context.Context) error
}

// Snapshot is a copy of the dictionary plus the lemma a client should show first.
type Snapshot struct {
	Dictionary   *dictionary.Dictionary
	InitialEntry *string
}

func newSnapshot(d *dictionary.Dictionary) Snapshot {
	s := Snapshot{Dictionary: d}
	if first, ok := d.First(); ok {
		s.InitialEntry = &first
	}
	return s
}

// validateEntry checks the request-level invariants shared by every repository.
func validateEntry(d *dictionary.Dictionary, lemma string, entry dictionary.Entry) error {
	if lemma == "" {
		return fmt.Errorf("%w: lemma is required", dictionary.ErrInvalidEntry)
	}
	if len(entry) == 0 {
		return fmt.Errorf("%w: entry is required", dictionary.ErrInvalidEntry)
	}
	if unknown := d.UnknownFields(entry); len(unknown) > 0 {
		return fmt.Errorf("%w: unknown fields %v", dictionary.ErrInvalidEntry, unknown)
	}
	return nil
}
