package platform

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/notes/pkg/core"
)

// Storage backend names accepted by WithStorageBackend.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// options holds the internal configuration for a notes session.
type options struct {
	apiURL      string
	statePath   string
	backend     string
	offline     bool
	readOnly    bool
	devSafety   bool
	timeout     time.Duration
	rate        float64
	burst       int
	eventBuffer int
	logger      *slog.Logger
	registerer  prometheus.Registerer
	gateway     core.Gateway
	storage     core.Storage
	seed        []core.Note

	watcherErrorHandler func(error)
}

// Option defines a functional option for configuring a notes session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend:   BackendFile,
		devSafety: true,
		timeout:   10 * time.Second,
	}
}

// WithAPIURL sets the base URL of the notes API.
func WithAPIURL(url string) Option {
	return func(o *options) {
		o.apiURL = url
	}
}

// WithStatePath sets where the persisted snapshot lives. For the badger
// backend this is a directory.
func WithStatePath(path string) Option {
	return func(o *options) {
		o.statePath = path
	}
}

// WithStorageBackend selects the storage by name: "file" (default), "badger"
// or "memory".
func WithStorageBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithOffline replaces the HTTP gateway with an in-memory one.
// Seed notes, if any, are what the first fetch returns.
func WithOffline(offline bool, seed ...core.Note) Option {
	return func(o *options) {
		o.offline = offline
		o.seed = seed
	}
}

// WithReadOnly makes the file storage reject writes. Automatically bypasses
// the dev sandbox.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`: the state file is redirected into a temporary directory.
// Enabled by default.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRateLimit limits outgoing API requests. Zero disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.rate = perSecond
		o.burst = burst
	}
}

// WithMetrics registers store and gateway counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithGateway injects a custom gateway (e.g. a mock). API options are ignored.
func WithGateway(g core.Gateway) Option {
	return func(o *options) {
		o.gateway = g
	}
}

// WithStorage injects a custom storage. The backend option is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithWatcherErrorHandler registers a callback for runtime errors of the
// state file watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watcherErrorHandler = fn
	}
}
