// Package gateway implements core.Gateway over an HTTP JSON resource.
//
// Routes (json-server compatible):
//
//	GET    {base}/notes        list
//	POST   {base}/notes        create
//	PUT    {base}/notes/{id}   update
//	DELETE {base}/notes/{id}   delete
//
// List and Create degrade instead of failing: a transport error or a
// non-success response yields an empty list, or a locally synthesized note,
// and a warning in the log. Update and Delete return the error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/aretw0/notes/pkg/core"
)

// Client is the HTTP core.Gateway.
type Client struct {
	base     string
	http     *http.Client
	logger   *slog.Logger
	limiter  *rate.Limiter
	now      func() time.Time
	requests *prometheus.CounterVec
}

// New creates an HTTP gateway.
func New(config Config) (*Client, error) {
	base := strings.TrimRight(config.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid gateway base URL %q: %w", config.BaseURL, err)
	}

	c := &Client{
		base:   base,
		http:   config.HTTPClient,
		logger: config.Logger,
		now:    config.Now,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: config.Timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if config.RatePerSecond > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(config.RatePerSecond), burst)
	}
	if config.Registerer != nil {
		c.requests = promauto.With(config.Registerer).NewCounterVec(prometheus.CounterOpts{
			Name: "notes_gateway_requests_total",
			Help: "Gateway calls by operation and outcome (ok, fallback, error)",
		}, []string{"op", "outcome"})
	}
	return c, nil
}

// List implements core.Gateway. It never returns a transport error.
func (c *Client) List(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes, "Failed to fetch notes"); err != nil {
		if ctx.Err() != nil {
			c.observe("list", "error")
			return nil, ctx.Err()
		}
		c.logger.Warn("Error fetching notes", errAttrs(err)...)
		c.observe("list", "fallback")
		return []core.Note{}, nil
	}
	if notes == nil {
		notes = []core.Note{}
	}
	c.observe("list", "ok")
	return notes, nil
}

// Create implements core.Gateway. On failure it returns a locally
// synthesized note with a fresh ID and the current time for both timestamps.
func (c *Client) Create(ctx context.Context, dto core.CreateNote) (core.Note, error) {
	ts := core.FormatTime(c.now())
	outgoing := core.Note{
		ID:          uuid.NewString(),
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	var created core.Note
	if err := c.do(ctx, http.MethodPost, "/notes", outgoing, &created, "Failed to create note"); err != nil {
		c.logger.Warn("Error creating note", errAttrs(err)...)
		c.observe("create", "fallback")
		return c.fallbackNote(dto), nil
	}
	c.observe("create", "ok")
	return created, nil
}

func (c *Client) fallbackNote(dto core.CreateNote) core.Note {
	ts := core.FormatTime(c.now())
	return core.Note{
		ID:          uuid.NewString(),
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// updateBody is the PUT payload: the DTO plus a fresh updatedAt.
type updateBody struct {
	core.UpdateNote
	UpdatedAt string `json:"updatedAt"`
}

// Update implements core.Gateway.
func (c *Client) Update(ctx context.Context, dto core.UpdateNote) (core.Note, error) {
	body := updateBody{UpdateNote: dto, UpdatedAt: core.FormatTime(c.now())}

	var updated core.Note
	if err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(dto.ID), body, &updated, "Failed to update note"); err != nil {
		c.logger.Error("Error updating note", append([]any{"id", dto.ID}, errAttrs(err)...)...)
		c.observe("update", "error")
		return core.Note{}, err
	}
	c.observe("update", "ok")
	return updated, nil
}

// Delete implements core.Gateway.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil, "Failed to delete note"); err != nil {
		c.logger.Error("Error deleting note", append([]any{"id", id}, errAttrs(err)...)...)
		c.observe("delete", "error")
		return err
	}
	c.observe("delete", "ok")
	return nil
}

// do performs one JSON round trip. failMsg becomes the message of a StatusError.
func (c *Client) do(ctx context.Context, method, path string, in, out any, failMsg string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Op: method + " " + path, StatusCode: resp.StatusCode, Message: failMsg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) observe(op, outcome string) {
	if c.requests == nil {
		return
	}
	c.requests.WithLabelValues(op, outcome).Inc()
}

var _ core.Gateway = (*Client)(nil)
