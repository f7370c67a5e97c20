package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/notes/pkg/adapters/badger"
	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/adapters/memory"
	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/gateway"
	"github.com/aretw0/notes/pkg/store"
)

// App is a wired notes session: the store plus the adapters behind it.
type App struct {
	Store   *store.Store
	Gateway core.Gateway
	Storage core.Storage

	logger *slog.Logger
}

// New builds the gateway and storage selected by opts, then the store,
// which rehydrates from storage.
//
//	app, err := platform.New(ctx, platform.WithOffline(true))
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	storage, err := newStorage(o, logger)
	if err != nil {
		return nil, err
	}

	gw, err := newGateway(ctx, o, storage, logger)
	if err != nil {
		closeStorage(storage)
		return nil, err
	}

	storeOpts := []store.Option{
		store.WithStorage(storage),
		store.WithLogger(logger),
		store.WithEventBuffer(o.eventBuffer),
	}
	if o.registerer != nil {
		storeOpts = append(storeOpts, store.WithMetrics(o.registerer))
	}

	s, err := store.New(ctx, gw, storeOpts...)
	if err != nil {
		closeStorage(storage)
		return nil, err
	}

	return &App{Store: s, Gateway: gw, Storage: storage, logger: logger}, nil
}

// Watch reports external changes to the persisted state. It fails when the
// storage cannot be watched.
func (a *App) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := a.Storage.(core.Watchable)
	if !ok {
		return nil, fmt.Errorf("storage does not support watching")
	}
	return w.Watch(ctx)
}

// Close releases the storage.
func (a *App) Close() error {
	return closeStorage(a.Storage)
}

func closeStorage(s core.Storage) error {
	if c, ok := s.(core.Closer); ok {
		return c.Close()
	}
	return nil
}

func newGateway(ctx context.Context, o *options, storage core.Storage, logger *slog.Logger) (core.Gateway, error) {
	if o.gateway != nil {
		return o.gateway, nil
	}
	if o.offline {
		seed, err := offlineSeed(ctx, o, storage)
		if err != nil {
			return nil, err
		}
		logger.Debug("using in-memory gateway", "seed", len(seed))
		return memory.NewGateway(memory.WithSeed(seed...)), nil
	}

	config := gateway.DefaultConfig()
	if o.apiURL != "" {
		config.BaseURL = o.apiURL
	}
	if o.timeout > 0 {
		config.Timeout = o.timeout
	}
	config.Logger = logger
	config.RatePerSecond = o.rate
	config.Burst = o.burst
	config.Registerer = o.registerer

	return gateway.New(config)
}

// offlineSeed picks what the in-memory gateway starts with: the explicit seed,
// otherwise the persisted notes, so each offline session continues the last.
func offlineSeed(ctx context.Context, o *options, storage core.Storage) ([]core.Note, error) {
	if len(o.seed) > 0 {
		return o.seed, nil
	}
	snap, ok, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load offline seed: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return snap.Notes, nil
}

func newStorage(o *options, logger *slog.Logger) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}
	if o.backend == BackendMemory {
		return memory.NewStorage(), nil
	}

	userPath := o.statePath
	if userPath == "" && o.backend == BackendBadger {
		userPath = DefaultBadgerPath()
	}
	useTemp := o.devSafety && !o.readOnly && IsDevRun()
	path := ResolveStatePath(userPath, useTemp)
	if useTemp && path != userPath {
		logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", userPath, "resolved_path", path)
	}

	switch o.backend {
	case BackendFile, "":
		return fs.NewStorage(fs.Config{
			Path:         path,
			Logger:       logger,
			ReadOnly:     o.readOnly,
			ErrorHandler: o.watcherErrorHandler,
		})
	case BackendBadger:
		if o.readOnly {
			return nil, errors.New("badger backend does not support read-only mode")
		}
		return badger.Open(badger.Config{Path: path, SyncWrites: true, Logger: logger})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", o.backend)
	}
}
