package tracking

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/collerrors"
)

// Cache is the key-selector flavour of Dictionary: instead of accepting
// explicit (key, value) pairs, it derives the key from each item via
// keySelector. Spec §4.3 treats Cache and Dictionary as behaviourally
// identical once the key is obtained, so Cache is implemented as a thin
// item-to-pair adapter over a Dictionary.
type Cache[K comparable, V any] struct {
	dict        *Dictionary[K, V]
	keySelector func(item V) K
}

// NewCache creates an empty cache. Unlike the optional equality comparers
// accepted throughout this package, keySelector is required — a Cache has
// no other way to derive a key from an item — so a nil keySelector fails
// construction with collerrors.ErrNullArgument rather than panicking on the
// first Add/AddOrUpdate call.
func NewCache[K comparable, V any](capacity int, keySelector func(item V) K, valueEquals func(a, b V) bool) (*Cache[K, V], error) {
	if keySelector == nil {
		return nil, collerrors.ErrNullArgument
	}
	return &Cache[K, V]{
		dict:        NewDictionary[K, V](capacity, valueEquals),
		keySelector: keySelector,
	}, nil
}

func (c *Cache[K, V]) SetChangeCollectionEnabled(enabled bool) { c.dict.SetChangeCollectionEnabled(enabled) }
func (c *Cache[K, V]) IsChangeCollectionEnabled() bool         { return c.dict.IsChangeCollectionEnabled() }
func (c *Cache[K, V]) IsDirty() bool                           { return c.dict.IsDirty() }
func (c *Cache[K, V]) Count() int                              { return c.dict.Count() }
func (c *Cache[K, V]) ContainsKey(key K) bool                  { return c.dict.ContainsKey(key) }
func (c *Cache[K, V]) TryGetValue(key K) (V, bool)             { return c.dict.TryGetValue(key) }
func (c *Cache[K, V]) Get(key K) (V, error)                    { return c.dict.Get(key) }
func (c *Cache[K, V]) Items() map[K]V                          { return c.dict.Items() }

// Add inserts item under keySelector(item). Fails with
// collerrors.ErrDuplicateKey if that key is already present.
func (c *Cache[K, V]) Add(item V) error {
	return c.dict.Add(c.keySelector(item), item)
}

// AddOrUpdate inserts or replaces item under keySelector(item).
func (c *Cache[K, V]) AddOrUpdate(item V) {
	c.dict.AddOrReplace(c.keySelector(item), item)
}

// AddOrUpdateRange applies AddOrUpdate to each item, in order.
func (c *Cache[K, V]) AddOrUpdateRange(items []V) {
	c.dict.builder.EnsureCapacity(c.dict.builder.Count() + len(items))
	for _, item := range items {
		c.AddOrUpdate(item)
	}
}

// RemoveKey deletes the entry for key if present.
func (c *Cache[K, V]) RemoveKey(key K) bool { return c.dict.Remove(key) }

// Remove deletes item's entry, gated by value equality (the stored value for
// keySelector(item) must equal item).
func (c *Cache[K, V]) Remove(item V) bool {
	return c.dict.RemoveValue(c.keySelector(item), item)
}

// RemoveRange removes each of keys, best-effort.
func (c *Cache[K, V]) RemoveRange(keys []K) { c.dict.RemoveRange(keys) }

func (c *Cache[K, V]) Clear() { c.dict.Clear() }

// Reset clears the cache then re-adds items, keyed by keySelector.
func (c *Cache[K, V]) Reset(items []V) {
	pairs := make(map[K]V, len(items))
	for _, item := range items {
		pairs[c.keySelector(item)] = item
	}
	c.dict.Reset(pairs)
}

func (c *Cache[K, V]) CaptureChangesAndClean() changeset.KeyedChangeSet[K, V] {
	return c.dict.CaptureChangesAndClean()
}
