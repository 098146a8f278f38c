// Package cache provides a read-through cache with explicit, collection
// scoped invalidation. Derived data (party lists, dashboard figures) is
// cached per (collection, owner) and dropped after every successful write
// to that collection.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Collection names the entity collections that can be cached.
type Collection string

const (
	Parties      Collection = "parties"
	Transactions Collection = "transactions"
	Items        Collection = "items"
	Reports      Collection = "reports"
)

// Store wraps go-cache with collection/owner scoped keys. An epoch counter
// per (collection, owner) makes invalidation O(1): bumping the epoch
// orphans every key written under the previous one, and go-cache's janitor
// evicts the stale entries when their TTL lapses.
type Store struct {
	backend *gocache.Cache
	ttl     time.Duration
}

// New creates a Store whose entries expire after ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		backend: gocache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

func (s *Store) epochKey(collection Collection, ownerID string) string {
	return fmt.Sprintf("epoch:%s:%s", collection, ownerID)
}

func (s *Store) epoch(collection Collection, ownerID string) uint64 {
	if v, found := s.backend.Get(s.epochKey(collection, ownerID)); found {
		if epoch, ok := v.(uint64); ok {
			return epoch
		}
	}
	return 0
}

func (s *Store) entryKey(collection Collection, ownerID, key string) string {
	return fmt.Sprintf("%s:%s:%d:%s", collection, ownerID, s.epoch(collection, ownerID), key)
}

// Get returns a cached value for (collection, owner, key), if present.
func (s *Store) Get(collection Collection, ownerID, key string) (interface{}, bool) {
	return s.backend.Get(s.entryKey(collection, ownerID, key))
}

// Set stores a value for (collection, owner, key) with the store TTL.
func (s *Store) Set(collection Collection, ownerID, key string, value interface{}) {
	s.backend.Set(s.entryKey(collection, ownerID, key), value, s.ttl)
}

// Invalidate drops every cached entry for (collection, owner). Services
// call this after each successful write to the collection.
func (s *Store) Invalidate(collection Collection, ownerID string) {
	next := s.epoch(collection, ownerID) + 1
	// Epoch entries never expire so concurrent readers always agree on the
	// current generation.
	s.backend.Set(s.epochKey(collection, ownerID), next, gocache.NoExpiration)
}

// InvalidateAll drops the given owner's entries across several collections.
func (s *Store) InvalidateAll(ownerID string, collections ...Collection) {
	for _, collection := range collections {
		s.Invalidate(collection, ownerID)
	}
}
