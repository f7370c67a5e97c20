package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string     `json:"path"`
	Format        string     `json:"format"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	LastSave      *time.Time `json:"last_save,omitempty"`
	CorruptReads  int        `json:"corrupt_reads"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StorageState{
		Path:          s.path,
		Format:        s.codec.Name(),
		ReadOnly:      s.config.ReadOnly,
		WatcherActive: s.watcherActive,
		LastSave:      s.lastSave,
		CorruptReads:  s.corrupt,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "file"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
