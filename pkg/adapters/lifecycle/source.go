// Package lifecycle exposes store and storage event streams as lifecycle
// sources so they can be supervised next to other workers.
package lifecycle

import (
	"context"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notes/pkg/core"
)

type eventSource struct {
	events <-chan core.Event
	types  []core.EventType
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that forwards events from the given
// channel. When types is non-empty only those event types are forwarded.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	return &eventSource{
		events: events,
		types:  types,
		out:    make(chan lifecycle.Event),
	}
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the input channel closes, then
// closes the output channel.
func (s *eventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
