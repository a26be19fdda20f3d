package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "events.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_FIFO(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Enqueue(Item{
			ID:        id,
			Entity:    EntityTaskEvent,
			Operation: OperationPublish,
			Data:      json.RawMessage(`{}`),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	items, err := s.GetBatch(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, DefaultPriority, items[0].Priority)
}

func TestStore_RequeueKeepsPosition(t *testing.T) {
	s := openStore(t)
	base := time.Now()
	require.NoError(t, s.Enqueue(Item{ID: "first", Timestamp: base}))
	require.NoError(t, s.Enqueue(Item{ID: "second", Timestamp: base.Add(time.Millisecond)}))

	items, err := s.GetBatch(1)
	require.NoError(t, err)
	first := items[0]
	first.Retries++
	require.NoError(t, s.Requeue(first))

	items, err = s.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].ID)
	assert.Equal(t, 1, items[0].Retries)
}

func TestStore_Remove(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Enqueue(Item{ID: "x"}))
	require.NoError(t, s.Enqueue(Item{ID: "y"}))

	items, err := s.GetBatch(10)
	require.NoError(t, err)
	require.NoError(t, s.Remove(items[0]))
	require.NoError(t, s.Remove(Item{ID: "y"}))

	size, err := s.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestStore_Cleanup(t *testing.T) {
	s := openStore(t)
	now := time.Now()
	require.NoError(t, s.Enqueue(Item{ID: "old", Timestamp: now.Add(-48 * time.Hour)}))
	require.NoError(t, s.Enqueue(Item{ID: "new", Timestamp: now}))

	removed, err := s.Cleanup(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	items, err := s.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].ID)
}

func TestStore_Closed(t *testing.T) {
	var s *Store
	assert.Error(t, s.Enqueue(Item{}))
	_, err := s.Size()
	assert.Error(t, err)
	assert.NoError(t, s.Close())
}
