// Package badger persists the store snapshot in an embedded BadgerDB.
//
// The snapshot is kept under a single key, encoded as JSON, so the value is
// interchangeable with the file storage format.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/dgraph-io/badger/v4"

	"github.com/aretw0/notes/pkg/core"
)

// SnapshotKey is the key holding the persisted snapshot.
const SnapshotKey = "notesStore"

// Config holds configuration for the BadgerDB storage.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	// SyncWrites fsyncs every Save.
	SyncWrites bool

	// Logger receives BadgerDB's internal logs. Nil disables them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used for a persistent database at path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration with no disk I/O.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Storage implements core.Storage on BadgerDB.
type Storage struct {
	db     *badger.DB
	config Config

	mu       sync.Mutex
	lastSave *time.Time
	closed   bool
}

// Open opens (or creates) the database described by cfg.
// The caller must Close the storage when done.
func Open(cfg Config) (*Storage, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Storage{db: db, config: cfg}, nil
}

// Load implements core.Storage. An undecodable value is treated as absent.
func (s *Storage) Load(ctx context.Context) (core.Snapshot, bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SnapshotKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap core.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		if s.config.Logger != nil {
			s.config.Logger.Warn("ignoring unreadable snapshot", "key", SnapshotKey, "error", err)
		}
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save implements core.Storage.
func (s *Storage) Save(ctx context.Context, snap core.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(SnapshotKey), raw)
	}); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastSave = &now
	s.mu.Unlock()
	return nil
}

// Close implements core.Closer. It is safe to call more than once.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path     string     `json:"path,omitempty"`
	InMemory bool       `json:"in_memory"`
	LastSave *time.Time `json:"last_save,omitempty"`
	Closed   bool       `json:"closed"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StorageState{
		Path:     s.config.Path,
		InMemory: s.config.InMemory,
		LastSave: s.lastSave,
		Closed:   s.closed,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "badger"
}

var _ core.Storage = (*Storage)(nil)
var _ core.Closer = (*Storage)(nil)
var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
