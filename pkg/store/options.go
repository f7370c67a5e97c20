package store

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/notes/pkg/core"
)

// options holds the configuration of a Store.
type options struct {
	storage     core.Storage
	logger      *slog.Logger
	registerer  prometheus.Registerer
	eventBuffer int
}

// Option defines a functional option for configuring the Store.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		eventBuffer: defaultEventBuffer,
	}
}

// WithStorage sets the durable mirror. Without it nothing is persisted.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers the store collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.eventBuffer = size
		}
	}
}
