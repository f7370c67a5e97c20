package core

import "time"

// Filter holds the criteria of the filtered view.
// An empty Category is treated as CategoryAll.
type Filter struct {
	Category Category
	Query    string
}

// Snapshot is the subset of store state mirrored to durable storage.
// No other store field is ever persisted.
type Snapshot struct {
	Notes            []Note   `json:"notes" yaml:"notes"`
	SelectedCategory Category `json:"selectedCategory" yaml:"selectedCategory"`
	SearchQuery      string   `json:"searchQuery" yaml:"searchQuery"`
}

// DefaultSnapshot returns the state used when nothing was persisted.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Notes:            []Note{},
		SelectedCategory: CategoryAll,
		SearchQuery:      "",
	}
}

// EventType represents the kind of change committed to the store.
type EventType string

const (
	EventNotesChanged   EventType = "NOTES_CHANGED"
	EventFilterChanged  EventType = "FILTER_CHANGED"
	EventLoadingChanged EventType = "LOADING_CHANGED"
	EventErrorChanged   EventType = "ERROR_CHANGED"

	// EventStorageChanged is emitted by watchable storages when the
	// persisted snapshot was modified outside the process.
	EventStorageChanged EventType = "STORAGE_CHANGED"
)

// Event represents a committed change.
type Event struct {
	Type EventType
	At   time.Time
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return string(e.Type) + "@" + e.At.Format(time.RFC3339)
}
