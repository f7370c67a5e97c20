package fs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/core"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSnapshot() core.Snapshot {
	return core.Snapshot{
		Notes: []core.Note{{
			ID: "1", Title: "Title", Description: "Description", Category: core.CategoryWork,
			CreatedAt: "2026-01-01T00:00:00.000Z", UpdatedAt: "2026-01-02T00:00:00.000Z",
		}},
		SelectedCategory: core.CategoryWork,
		SearchQuery:      "tit",
	}
}

func TestStorage_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing File Means Nothing Persisted", func(t *testing.T) {
		s, err := NewStorage(Config{Path: filepath.Join(t.TempDir(), "state.json"), Logger: quietLogger()})
		require.NoError(t, err)

		_, ok, err := s.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Corrupted File Self Heals", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte("{ invalid json"), 0o644))

		s, err := NewStorage(Config{Path: path, Logger: quietLogger()})
		require.NoError(t, err)

		_, ok, err := s.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, s.State().(StorageState).CorruptReads)
	})

	t.Run("Unknown Fields Are Ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		content := `{"notes":[],"selectedCategory":"Todo","searchQuery":"x","isLoading":true,"error":"boom"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s, err := NewStorage(Config{Path: path, Logger: quietLogger()})
		require.NoError(t, err)

		snap, ok, err := s.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, core.CategoryTodo, snap.SelectedCategory)
	})
}

func TestStorage_RoundTrip(t *testing.T) {
	for _, name := range []string{"state.json", "state.yaml", "state.yml"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", name)
			s, err := NewStorage(Config{Path: path, Logger: quietLogger()})
			require.NoError(t, err)

			require.NoError(t, s.Save(ctx, sampleSnapshot()))

			reopened, err := NewStorage(Config{Path: path, Logger: quietLogger()})
			require.NoError(t, err)
			snap, ok, err := reopened.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, sampleSnapshot(), snap)
		})
	}
}

func TestStorage_PersistsOnlySnapshotFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewStorage(Config{Path: path, Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"selectedCategory": "Work"`)
	assert.NotContains(t, string(data), "isLoading")
	assert.NotContains(t, string(data), "error")
}

func TestStorage_ReadOnly(t *testing.T) {
	s, err := NewStorage(Config{Path: filepath.Join(t.TempDir(), "state.json"), ReadOnly: true})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Save(context.Background(), sampleSnapshot()), core.ErrReadOnly)
}

func TestNewStorage_Errors(t *testing.T) {
	_, err := NewStorage(Config{})
	assert.Error(t, err)

	_, err = NewStorage(Config{Path: "state.toml"})
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "sub", "file.json")

	require.NoError(t, writeFileAtomic(filename, []byte("first"), 0o600))
	require.NoError(t, writeFileAtomic(filename, []byte("second"), 0o600))

	got, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(filename))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "temp file left behind: %s", e.Name())
	}
}

func TestStorage_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewStorage(Config{Path: path, Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, core.DefaultSnapshot()))

	events, err := s.Watch(ctx)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return s.State().(StorageState).WatcherActive }, time.Second, 10*time.Millisecond)

	// Own writes are not reported.
	require.NoError(t, s.Save(ctx, sampleSnapshot()))
	select {
	case e := <-events:
		t.Fatalf("unexpected event for own write: %v", e)
	case <-time.After(200 * time.Millisecond):
	}

	// Another process rewrites the file.
	other, err := NewStorage(Config{Path: path, Logger: quietLogger()})
	require.NoError(t, err)
	changed := sampleSnapshot()
	changed.SearchQuery = "external"
	require.NoError(t, other.Save(ctx, changed))

	select {
	case e := <-events:
		assert.Equal(t, core.EventStorageChanged, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("external write not reported")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}
