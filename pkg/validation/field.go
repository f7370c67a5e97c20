package validation

import "sync"

// Input is an observable text value read by the Validator.
type Input interface {
	Value() string
}

// Field is a text input that notifies subscribers on every change.
// It is safe for concurrent use.
type Field struct {
	mu     sync.RWMutex
	value  string
	nextID int
	subs   map[int]func(string)
}

// NewField creates a Field holding v.
func NewField(v string) *Field {
	return &Field{value: v, subs: make(map[int]func(string))}
}

// Value returns the current text.
func (f *Field) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Set replaces the text and notifies subscribers synchronously.
func (f *Field) Set(v string) {
	f.mu.Lock()
	f.value = v
	subs := make([]func(string), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn to be called after every Set.
// The returned function removes the subscription.
func (f *Field) Subscribe(fn func(string)) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// observable is implemented by inputs that can push changes (e.g. *Field).
type observable interface {
	Subscribe(fn func(string)) (cancel func())
}

// Static is an Input that never changes.
type Static string

// Value implements Input.
func (s Static) Value() string { return string(s) }
