package cache_test

import (
	"testing"
	"time"

	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	store := cache.New(time.Minute)

	_, found := store.Get(cache.Parties, "user-1", "list")
	assert.False(t, found)

	store.Set(cache.Parties, "user-1", "list", []string{"a", "b"})

	v, found := store.Get(cache.Parties, "user-1", "list")
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestStoreScopedByOwner(t *testing.T) {
	store := cache.New(time.Minute)
	store.Set(cache.Parties, "user-1", "list", "mine")

	_, found := store.Get(cache.Parties, "user-2", "list")
	assert.False(t, found)
}

func TestStoreInvalidate(t *testing.T) {
	store := cache.New(time.Minute)
	store.Set(cache.Parties, "user-1", "list", "stale")
	store.Set(cache.Reports, "user-1", "dashboard", "kept")

	store.Invalidate(cache.Parties, "user-1")

	_, found := store.Get(cache.Parties, "user-1", "list")
	assert.False(t, found, "invalidated collection must miss")

	_, found = store.Get(cache.Reports, "user-1", "dashboard")
	assert.True(t, found, "other collections are untouched")

	// The collection is usable again after invalidation.
	store.Set(cache.Parties, "user-1", "list", "fresh")
	v, found := store.Get(cache.Parties, "user-1", "list")
	require.True(t, found)
	assert.Equal(t, "fresh", v)
}

func TestStoreInvalidateAll(t *testing.T) {
	store := cache.New(time.Minute)
	store.Set(cache.Parties, "user-1", "list", 1)
	store.Set(cache.Reports, "user-1", "dashboard", 2)

	store.InvalidateAll("user-1", cache.Parties, cache.Reports)

	_, found := store.Get(cache.Parties, "user-1", "list")
	assert.False(t, found)
	_, found = store.Get(cache.Reports, "user-1", "dashboard")
	assert.False(t, found)
}
