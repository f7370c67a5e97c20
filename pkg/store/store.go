// Package store holds the canonical in-memory notes collection, its filter
// criteria and lifecycle flags, and reconciles it with a core.Gateway.
//
// One Store is created per application session and passed explicitly to
// whatever needs it. Derived views are computed from the committed state on
// every read. The notes, selected category and search query are written
// through to a core.Storage after every change and rehydrated by New.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/notes/pkg/core"
)

// Store is the reactive notes state container.
type Store struct {
	gateway core.Gateway
	storage core.Storage
	logger  *slog.Logger
	metrics *metrics
	broker  *broker

	// persistMu orders snapshot writes so the last write reflects the latest state.
	persistMu sync.Mutex

	mu               sync.RWMutex
	notes            []core.Note
	selectedCategory core.Category
	searchQuery      string
	isLoading        bool
	err              *string
}

// New creates the Store and rehydrates the persisted fields from storage.
func New(ctx context.Context, gateway core.Gateway, opts ...Option) (*Store, error) {
	if gateway == nil {
		return nil, fmt.Errorf("store: gateway is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	m := newMetrics(o.registerer)
	snap := core.DefaultSnapshot()

	s := &Store{
		gateway:          gateway,
		storage:          o.storage,
		logger:           logger,
		metrics:          m,
		broker:           newBroker(o.eventBuffer, m.eventDropped),
		notes:            snap.Notes,
		selectedCategory: snap.SelectedCategory,
		searchQuery:      snap.SearchQuery,
	}

	if s.storage != nil {
		persisted, ok, err := s.storage.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("store: rehydrate: %w", err)
		}
		if ok {
			s.apply(persisted)
			logger.Debug("store rehydrated", "notes", len(persisted.Notes))
		}
	}
	m.setNotes(len(s.notes))

	return s, nil
}

// Rehydrate re-reads the persisted snapshot, replacing the in-memory fields.
// It is a no-op when storage holds nothing.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	snap, ok, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("store: rehydrate: %w", err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.apply(snap)
	n := len(s.notes)
	s.mu.Unlock()

	s.metrics.setNotes(n)
	s.broker.publish(core.EventNotesChanged, core.EventFilterChanged)
	return nil
}

// apply replaces the persisted fields. Callers hold s.mu (or own s exclusively).
func (s *Store) apply(snap core.Snapshot) {
	s.notes = slices.Clone(snap.Notes)
	if s.notes == nil {
		s.notes = []core.Note{}
	}
	s.selectedCategory = snap.SelectedCategory
	s.searchQuery = snap.SearchQuery
}

// --- State ---

// Notes returns a copy of the raw collection, in collection order.
func (s *Store) Notes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// SelectedCategory returns the category filter (CategoryAll by default).
func (s *Store) SelectedCategory() core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCategory
}

// SearchQuery returns the raw search query.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// Filter returns the current filter criteria.
func (s *Store) Filter() core.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Filter{Category: s.selectedCategory, Query: s.searchQuery}
}

// IsLoading reports whether a gateway operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Error returns the message of the last failed operation.
func (s *Store) Error() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err == nil {
		return "", false
	}
	return *s.err, true
}

// Subscribe delivers an event after every committed change until ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan core.Event {
	return s.broker.subscribe(ctx)
}

// --- Filter helpers ---

// SetCategory selects the category filter (or CategoryAll).
func (s *Store) SetCategory(c core.Category) {
	s.mu.Lock()
	s.selectedCategory = c
	s.mu.Unlock()
	s.persist()
	s.broker.publish(core.EventFilterChanged)
}

// SetSearchQuery sets the search query. It is trimmed only when matching.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	s.searchQuery = q
	s.mu.Unlock()
	s.persist()
	s.broker.publish(core.EventFilterChanged)
}

// ClearError resets the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	changed := s.err != nil
	s.err = nil
	s.mu.Unlock()
	if changed {
		s.broker.publish(core.EventErrorChanged)
	}
}

// --- Mutations ---

// LoadAll replaces the collection with the gateway's list.
// It does nothing while another load is in flight, or when the collection
// is already populated and force is false.
func (s *Store) LoadAll(ctx context.Context, force bool) error {
	s.mu.Lock()
	if s.isLoading {
		s.mu.Unlock()
		s.metrics.observe("load", "skipped")
		return nil
	}
	if len(s.notes) > 0 && !force {
		s.mu.Unlock()
		s.metrics.observe("load", "skipped")
		return nil
	}
	s.startLocked()
	s.mu.Unlock()
	s.broker.publish(core.EventLoadingChanged, core.EventErrorChanged)

	notes, err := guard("load", func() ([]core.Note, error) {
		return s.gateway.List(ctx)
	})

	return s.settle("load", err, msgFetchFailed, func() {
		// The store owns its collection; Update writes into it in place.
		s.notes = slices.Clone(notes)
		if s.notes == nil {
			s.notes = []core.Note{}
		}
	})
}

// Create sends dto to the gateway and appends the resulting note.
func (s *Store) Create(ctx context.Context, dto core.CreateNote) (core.Note, error) {
	s.start()

	note, err := guard("create", func() (core.Note, error) {
		return s.gateway.Create(ctx, dto)
	})

	if err := s.settle("create", err, msgCreateFailed, func() {
		s.notes = append(s.notes, note)
	}); err != nil {
		return core.Note{}, err
	}
	return note, nil
}

// Update sends dto to the gateway and replaces the matching note in place.
// When no local note has dto.ID the result is returned but not inserted.
func (s *Store) Update(ctx context.Context, dto core.UpdateNote) (core.Note, error) {
	s.start()

	note, err := guard("update", func() (core.Note, error) {
		return s.gateway.Update(ctx, dto)
	})

	if err := s.settle("update", err, msgUpdateFailed, func() {
		if i := findIndex(s.notes, dto.ID); i >= 0 {
			s.notes[i] = note
		} else {
			s.logger.Debug("update result discarded, note not held locally", "id", dto.ID)
		}
	}); err != nil {
		return core.Note{}, err
	}
	return note, nil
}

// Delete removes a note through the gateway, then locally.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.start()

	_, err := guard("delete", func() (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, id)
	})

	return s.settle("delete", err, msgDeleteFailed, func() {
		s.notes = slices.DeleteFunc(slices.Clone(s.notes), func(n core.Note) bool { return n.ID == id })
	})
}

func (s *Store) start() {
	s.mu.Lock()
	s.startLocked()
	s.mu.Unlock()
	s.broker.publish(core.EventLoadingChanged, core.EventErrorChanged)
}

func (s *Store) startLocked() {
	s.isLoading = true
	s.err = nil
}

// settle commits the outcome of a gateway call. On success reconcile runs
// under the write lock and the snapshot is persisted; on failure the
// normalized message is stored. isLoading is always reset. The returned
// error is err itself.
func (s *Store) settle(op string, err error, fallback string, reconcile func()) error {
	s.mu.Lock()
	if err != nil {
		msg := message(err, fallback)
		s.err = &msg
	} else {
		reconcile()
	}
	s.isLoading = false
	n := len(s.notes)
	s.mu.Unlock()

	if err != nil {
		s.metrics.observe(op, "error")
		s.logger.Error("store operation failed", "op", op, "error", err)
		s.broker.publish(core.EventErrorChanged, core.EventLoadingChanged)
		return err
	}

	s.metrics.observe(op, "ok")
	s.metrics.setNotes(n)
	s.persist()
	s.broker.publish(core.EventNotesChanged, core.EventLoadingChanged)
	return nil
}

// persist writes the current snapshot to storage. Failures are logged, not returned.
func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	snap := core.Snapshot{
		Notes:            slices.Clone(s.notes),
		SelectedCategory: s.selectedCategory,
		SearchQuery:      s.searchQuery,
	}
	s.mu.RUnlock()

	if err := s.storage.Save(context.Background(), snap); err != nil {
		s.metrics.persistFailed()
		s.logger.Warn("failed to persist notes state", "error", err)
	}
}
