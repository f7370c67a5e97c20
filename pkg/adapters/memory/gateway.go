// Package memory provides in-process implementations of core.Gateway and
// core.Storage. The gateway backs offline mode and serves seeded fallback
// data; both are used as test doubles.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/notes/pkg/core"
)

// Gateway is an in-memory core.Gateway.
type Gateway struct {
	mu    sync.RWMutex
	notes []core.Note
	now   func() time.Time
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithSeed preloads notes (e.g. fallback data for offline use).
func WithSeed(notes ...core.Note) GatewayOption {
	return func(g *Gateway) {
		g.notes = append(g.notes, notes...)
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		g.now = now
	}
}

// NewGateway creates an in-memory gateway.
func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// List implements core.Gateway.
func (g *Gateway) List(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.notes), nil
}

// Create implements core.Gateway.
func (g *Gateway) Create(ctx context.Context, dto core.CreateNote) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	ts := core.FormatTime(g.now())
	n := core.Note{
		ID:          uuid.NewString(),
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.notes = append(g.notes, n)
	return n, nil
}

// Update implements core.Gateway.
func (g *Gateway) Update(ctx context.Context, dto core.UpdateNote) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	i := slices.IndexFunc(g.notes, func(n core.Note) bool { return n.ID == dto.ID })
	if i < 0 {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, dto.ID)
	}

	n := g.notes[i]
	n.Title = dto.Title
	n.Description = dto.Description
	n.Category = dto.Category
	n.UpdatedAt = core.FormatTime(g.now())
	g.notes[i] = n
	return n, nil
}

// Delete implements core.Gateway.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	i := slices.IndexFunc(g.notes, func(n core.Note) bool { return n.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	g.notes = slices.Delete(g.notes, i, i+1)
	return nil
}

var _ core.Gateway = (*Gateway)(nil)
