package notes

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/pkg/core"
)

// --- Types ---

// App is a wired notes session.
type App = platform.App

// Note is a public alias for the note entity.
type Note = core.Note

// Category is a public alias for the note category.
type Category = core.Category

// --- Configuration ---

// Option defines a functional option for configuring a session.
type Option = platform.Option

// Storage backend names.
const (
	BackendFile   = platform.BackendFile
	BackendBadger = platform.BackendBadger
	BackendMemory = platform.BackendMemory
)

// WithAPIURL sets the base URL of the notes API.
func WithAPIURL(url string) Option {
	return platform.WithAPIURL(url)
}

// WithStatePath sets where the persisted snapshot lives.
func WithStatePath(path string) Option {
	return platform.WithStatePath(path)
}

// WithStorageBackend selects "file", "badger" or "memory".
func WithStorageBackend(name string) Option {
	return platform.WithStorageBackend(name)
}

// WithOffline replaces the API with an in-memory gateway seeded with notes.
func WithOffline(offline bool, seed ...Note) Option {
	return platform.WithOffline(offline, seed...)
}

// WithReadOnly makes the file storage reject writes.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temporary state sandbox used under `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithRateLimit limits outgoing API requests.
func WithRateLimit(perSecond float64, burst int) Option {
	return platform.WithRateLimit(perSecond, burst)
}

// WithMetrics registers counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return platform.WithMetrics(reg)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithGateway injects a custom gateway.
func WithGateway(g core.Gateway) Option {
	return platform.WithGateway(g)
}

// WithStorage injects a custom storage.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithWatcherErrorHandler receives state file watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a notes session.
func New(ctx context.Context, opts ...Option) (*App, error) {
	return platform.New(ctx, opts...)
}

// DefaultStatePath returns the default location of the state file.
func DefaultStatePath() string {
	return platform.DefaultStatePath()
}
