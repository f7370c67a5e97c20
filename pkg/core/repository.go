package core

import "context"

// Gateway is the remote CRUD boundary for notes.
//
// Degradation contract:
//   - List never fails on transport errors; it yields an empty list.
//   - Create never fails on transport errors; it yields a locally synthesized note.
//   - Update and Delete return an error on transport or non-success responses.
type Gateway interface {
	// List returns every note known to the remote.
	List(ctx context.Context) ([]Note, error)

	// Create stores a new note. The remote assigns ID and timestamps.
	Create(ctx context.Context, dto CreateNote) (Note, error)

	// Update replaces a note and refreshes its UpdatedAt.
	Update(ctx context.Context, dto UpdateNote) (Note, error)

	// Delete removes a note by its ID.
	Delete(ctx context.Context, id string) error
}

// Storage is the durable mirror of a Snapshot (the "local storage").
type Storage interface {
	// Load returns the persisted snapshot. ok is false when nothing was persisted yet.
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)

	// Save replaces the persisted snapshot.
	Save(ctx context.Context, snap Snapshot) error
}

// Watchable defines storages that can report external modifications.
type Watchable interface {
	// Watch emits EventStorageChanged whenever the snapshot changes outside the caller.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Closer is implemented by storages holding resources (files, databases).
type Closer interface {
	Close() error
}
