package store

import (
	"context"
	"fmt"

	"github.com/aretw0/notes/pkg/core"
)

// Fetch returns the note with id, loading the collection when it is not held
// locally (e.g. the store was started on a direct link to an edit page).
// It returns core.ErrNotFound when the note is still absent after a forced
// load, or when that load failed.
func (s *Store) Fetch(ctx context.Context, id string) (core.Note, error) {
	if n, ok := s.NoteByID(id); ok {
		return n, nil
	}

	if err := s.LoadAll(ctx, true); err != nil {
		return core.Note{}, fmt.Errorf("%w: %s: %w", core.ErrNotFound, id, err)
	}

	if n, ok := s.NoteByID(id); ok {
		return n, nil
	}
	return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
}
