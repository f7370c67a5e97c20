package store

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

const defaultEventBuffer = 100

// broker fans committed changes out to subscribers without ever blocking the store.
type broker struct {
	mu      sync.Mutex
	bufSize int
	nextID  int
	subs    map[int]chan core.Event
	dropped func()
}

func newBroker(bufSize int, dropped func()) *broker {
	if bufSize <= 0 {
		bufSize = defaultEventBuffer
	}
	return &broker{
		bufSize: bufSize,
		subs:    make(map[int]chan core.Event),
		dropped: dropped,
	}
}

func (b *broker) subscribe(ctx context.Context) <-chan core.Event {
	ch := make(chan core.Event, b.bufSize)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

func (b *broker) publish(types ...core.EventType) {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range types {
		e := core.Event{Type: t, At: now}
		for _, ch := range b.subs {
			select {
			case ch <- e:
			default:
				if b.dropped != nil {
					b.dropped()
				}
			}
		}
	}
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
