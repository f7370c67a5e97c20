// Package fs persists the store snapshot to a single JSON or YAML file and
// reports modifications made to that file by other processes.
package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// DefaultFileName is the state file name, after the original storage key.
const DefaultFileName = "notesStore.json"

// Config holds the configuration for the file storage.
type Config struct {
	Path     string
	Codec    Codec // nil picks one from the Path extension
	Logger   *slog.Logger
	ReadOnly bool // Save returns core.ErrReadOnly

	// ErrorHandler receives watcher runtime errors, which are otherwise only logged.
	ErrorHandler func(error)
}

// Storage implements core.Storage on the filesystem.
type Storage struct {
	path   string
	codec  Codec
	config Config
	logger *slog.Logger

	mu            sync.Mutex
	digest        [sha256.Size]byte // of the content last read or written by this process
	watcherActive bool
	lastSave      *time.Time
	corrupt       int
}

// NewStorage creates a file storage. The file is created by the first Save.
func NewStorage(config Config) (*Storage, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("state file path is required")
	}
	abs, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state path: %w", err)
	}

	codec := config.Codec
	if codec == nil {
		if codec, err = CodecFor(abs); err != nil {
			return nil, err
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Storage{path: abs, codec: codec, config: config, logger: logger}, nil
}

// Path returns the absolute path of the state file.
func (s *Storage) Path() string { return s.path }

// Load implements core.Storage. A missing file means nothing was persisted.
// A file that cannot be decoded is treated the same way, and logged.
func (s *Storage) Load(ctx context.Context) (core.Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("failed to read state file: %w", err)
	}

	snap, err := s.codec.Decode(data)
	if err != nil {
		s.mu.Lock()
		s.corrupt++
		s.mu.Unlock()
		s.logger.Warn("ignoring unreadable state file", "path", s.path, "error", err)
		return core.Snapshot{}, false, nil
	}

	s.mu.Lock()
	s.digest = sha256.Sum256(data)
	s.mu.Unlock()
	return snap, true, nil
}

// Save implements core.Storage with an atomic replace of the state file.
func (s *Storage) Save(ctx context.Context, snap core.Snapshot) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	data, err := s.codec.Encode(snap)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return err
	}
	s.digest = sha256.Sum256(data)
	now := time.Now()
	s.lastSave = &now
	return nil
}

// changedExternally reports whether the file content differs from what this
// process last read or wrote, and remembers the new content.
func (s *Storage) changedExternally() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sum == s.digest {
		return false
	}
	s.digest = sum
	return true
}

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
