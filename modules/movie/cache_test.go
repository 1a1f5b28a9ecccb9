package movie

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", cachedValue{Name: "a", Count: 2}))
	assert.True(t, mr.Exists("movie:k"))

	var got cachedValue
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedValue{Name: "a", Count: 2}, got)
}

func TestCache_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	var got cachedValue
	found, err := cache.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)

	stats := cache.GetStats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(0), stats.Errors)
}

func TestCache_TTL(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", cachedValue{Name: "a"}))
	mr.FastForward(2 * time.Minute)

	var got cachedValue
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Delete(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", 1))
	require.NoError(t, cache.Set(ctx, "b", 2))
	require.NoError(t, cache.Delete(ctx, "a", "b"))

	assert.False(t, mr.Exists("movie:a"))
	assert.False(t, mr.Exists("movie:b"))
	assert.Equal(t, uint64(2), cache.GetStats().Deletes)

	require.NoError(t, cache.Delete(ctx))
}

func TestCache_CorruptEntry(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("movie:k", "not json"))

	var got cachedValue
	found, err := cache.Get(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, uint64(1), cache.GetStats().Errors)
}

func TestCache_HitRate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1))

	var v int
	for range 3 {
		_, err := cache.Get(ctx, "k", &v)
		require.NoError(t, err)
	}
	_, err := cache.Get(ctx, "absent", &v)
	require.NoError(t, err)

	stats := cache.GetStats()
	assert.Equal(t, uint64(3), stats.Hits)
	assert.InDelta(t, 75.0, stats.HitRate, 0.001)
}

func TestCache_Ping(t *testing.T) {
	cache, mr := setupTestCache(t)
	assert.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
