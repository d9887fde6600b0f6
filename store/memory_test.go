package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idpkit/store"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "field", "value"))

		got, err := s.Get(ctx, "sess-1", "field")
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "field", "value"))

		_, err := s.Get(ctx, "sess-1", "other")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Get(ctx, "sess-2", "field")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "field", "old"))
		require.NoError(t, s.Set(ctx, "sess-1", "field", "new"))

		got, err := s.Get(ctx, "sess-1", "field")
		require.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("delete selected fields", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "keep", "v1"))
		require.NoError(t, s.Set(ctx, "sess-1", "drop-a", "v2"))
		require.NoError(t, s.Set(ctx, "sess-1", "drop-b", "v3"))

		require.NoError(t, s.Delete(ctx, "sess-1", "drop-a", "drop-b"))

		_, err := s.Get(ctx, "sess-1", "drop-a")
		assert.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Get(ctx, "sess-1", "keep")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Delete(ctx, "sess-unknown", "field"))
	})

	t.Run("clear drops the whole session", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "a", "1"))
		require.NoError(t, s.Set(ctx, "sess-1", "b", "2"))
		require.NoError(t, s.Set(ctx, "sess-2", "a", "1"))

		require.NoError(t, s.Clear(ctx, "sess-1"))
		assert.Equal(t, 1, s.Len())

		_, err := s.Get(ctx, "sess-1", "a")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty session key", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(0)
		t.Cleanup(func() { _ = s.Close() })

		_, err := s.Get(ctx, "", "field")
		assert.ErrorIs(t, err, store.ErrEmptySessionKey)
		assert.ErrorIs(t, s.Set(ctx, "", "field", "v"), store.ErrEmptySessionKey)
		assert.ErrorIs(t, s.Delete(ctx, "", "field"), store.ErrEmptySessionKey)
		assert.ErrorIs(t, s.Clear(ctx, ""), store.ErrEmptySessionKey)
	})

	t.Run("sessions expire after the ttl", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(25 * time.Millisecond)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "field", "value"))

		got, err := s.Get(ctx, "sess-1", "field")
		require.NoError(t, err)
		assert.Equal(t, "value", got)

		time.Sleep(60 * time.Millisecond)

		_, err = s.Get(ctx, "sess-1", "field")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("writes refresh the ttl", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore(50 * time.Millisecond)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "sess-1", "field", "value"))
		time.Sleep(30 * time.Millisecond)
		require.NoError(t, s.Set(ctx, "sess-1", "field", "value"))
		time.Sleep(30 * time.Millisecond)

		_, err := s.Get(ctx, "sess-1", "field")
		require.NoError(t, err, "second write should have pushed expiry out")
	})
}
