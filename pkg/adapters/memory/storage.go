package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/notes/pkg/core"
)

// Storage keeps the snapshot in process memory. Nothing survives a restart.
type Storage struct {
	mu    sync.Mutex
	snap  core.Snapshot
	saved bool
	saves int
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{}
}

// NewStorageWith creates a storage that already holds snap.
func NewStorageWith(snap core.Snapshot) *Storage {
	return &Storage{snap: clone(snap), saved: true}
}

// Load implements core.Storage.
func (s *Storage) Load(ctx context.Context) (core.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return core.Snapshot{}, false, nil
	}
	return clone(s.snap), true, nil
}

// Save implements core.Storage.
func (s *Storage) Save(ctx context.Context, snap core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = clone(snap)
	s.saved = true
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *Storage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

func clone(snap core.Snapshot) core.Snapshot {
	snap.Notes = slices.Clone(snap.Notes)
	return snap
}

var _ core.Storage = (*Storage)(nil)
