package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryStore_SetGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"open":3}`)
	require.NoError(t, store.Set(ctx, "dashboard:t1", value, time.Minute))
	value[0] = 'x'

	got, ok, err := store.Get(ctx, "dashboard:t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"open":3}`, string(got), "stored value is copied")
}

func TestInMemoryStore_Expiry(t *testing.T) {
	store := NewInMemoryStore()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), 30*time.Second))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))

	now = now.Add(30 * time.Second)
	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "c", []byte("3"), time.Minute))
	assert.Equal(t, 2, store.Size())
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, store.Delete(ctx, "a", "b", "c"))
	assert.Zero(t, store.Size())

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "a", nil, 0))
	assert.Zero(t, store.Size())
}

func TestNew_FallsBackToMemory(t *testing.T) {
	_, ok := New(nil, zap.NewNop()).(*InMemoryStore)
	assert.True(t, ok)
}
