package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "videos:public", []byte(`[]`), time.Minute))
	got, ok, err := m.Get(ctx, "videos:public")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(got))

	now = now.Add(time.Minute)
	_, ok, err = m.Get(ctx, "videos:public")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNoopCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	n := NewNoop()
	require.NoError(t, n.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := n.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
