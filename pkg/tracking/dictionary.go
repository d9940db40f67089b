package tracking

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/collerrors"
)

// Dictionary is a change-tracking keyed collection addressed by explicit
// (key, value) pairs. Key equality is Go's built-in comparable equality;
// value equality is an injected relation used solely to suppress no-op
// replacements — suppression needs only a comparison, never a hash, so
// unlike Set's element equality it can be injected without reshaping the
// backing map.
type Dictionary[K comparable, V any] struct {
	items       map[K]V
	valueEquals func(a, b V) bool
	builder     *changeset.KeyedChangeSetBuilder[K, V]
	enabled     bool
	dirty       bool
}

// NewDictionary creates an empty dictionary. A nil valueEquals disables
// no-op suppression (every AddOrReplace of an existing key is treated as a
// change).
func NewDictionary[K comparable, V any](capacity int, valueEquals func(a, b V) bool) *Dictionary[K, V] {
	if valueEquals == nil {
		valueEquals = func(a, b V) bool { return false }
	}
	return &Dictionary[K, V]{
		items:       make(map[K]V, capacity),
		valueEquals: valueEquals,
		builder:     changeset.NewKeyedChangeSetBuilder[K, V](capacity),
	}
}

func (d *Dictionary[K, V]) SetChangeCollectionEnabled(enabled bool) {
	if d.enabled && !enabled {
		d.builder.Clear()
	}
	d.enabled = enabled
}

func (d *Dictionary[K, V]) IsChangeCollectionEnabled() bool { return d.enabled }
func (d *Dictionary[K, V]) IsDirty() bool                   { return d.dirty }
func (d *Dictionary[K, V]) Count() int                      { return len(d.items) }
func (d *Dictionary[K, V]) ContainsKey(key K) bool          { _, ok := d.items[key]; return ok }

func (d *Dictionary[K, V]) TryGetValue(key K) (V, bool) {
	v, ok := d.items[key]
	return v, ok
}

// Get returns the value for key, or collerrors.ErrKeyNotFound.
func (d *Dictionary[K, V]) Get(key K) (V, error) {
	v, ok := d.items[key]
	if !ok {
		var zero V
		return zero, collerrors.ErrKeyNotFound
	}
	return v, nil
}

// Items returns a snapshot of the current (key, value) pairs.
func (d *Dictionary[K, V]) Items() map[K]V {
	out := make(map[K]V, len(d.items))
	for k, v := range d.items {
		out[k] = v
	}
	return out
}

func (d *Dictionary[K, V]) record(c changeset.KeyedChange[K, V]) {
	if d.enabled {
		d.builder.AddChange(c)
	}
}

// Add inserts (key, value). Fails with collerrors.ErrDuplicateKey if key is
// already present; the collection is left unchanged on failure.
func (d *Dictionary[K, V]) Add(key K, value V) error {
	if _, exists := d.items[key]; exists {
		return collerrors.ErrDuplicateKey
	}
	d.items[key] = value
	d.dirty = true
	d.record(changeset.NewKeyedAddition(key, value))
	return nil
}

// AddOrReplace inserts key if absent, replaces it if present and the new
// value differs under valueEquals, or no-ops if the value is unchanged.
func (d *Dictionary[K, V]) AddOrReplace(key K, value V) {
	old, exists := d.items[key]
	if !exists {
		d.items[key] = value
		d.dirty = true
		d.record(changeset.NewKeyedAddition(key, value))
		return
	}
	if d.valueEquals(old, value) {
		return
	}
	d.items[key] = value
	d.dirty = true
	d.record(changeset.NewKeyedReplacement(key, old, value))
}

// Remove deletes key if present, reporting whether it was deleted.
func (d *Dictionary[K, V]) Remove(key K) bool {
	old, exists := d.items[key]
	if !exists {
		return false
	}
	delete(d.items, key)
	d.dirty = true
	d.record(changeset.NewKeyedRemoval(key, old))
	if len(d.items) == 0 && d.enabled {
		d.builder.OnSourceCleared()
	}
	return true
}

// RemoveValue deletes key only if it is present and its current value
// equals expected under valueEquals.
func (d *Dictionary[K, V]) RemoveValue(key K, expected V) bool {
	old, exists := d.items[key]
	if !exists || !d.valueEquals(old, expected) {
		return false
	}
	delete(d.items, key)
	d.dirty = true
	d.record(changeset.NewKeyedRemoval(key, old))
	if len(d.items) == 0 && d.enabled {
		d.builder.OnSourceCleared()
	}
	return true
}

// AddOrReplaceRange applies AddOrReplace to each pair, in map iteration
// order (which is unspecified).
func (d *Dictionary[K, V]) AddOrReplaceRange(pairs map[K]V) {
	d.builder.EnsureCapacity(d.builder.Count() + len(pairs))
	for k, v := range pairs {
		d.AddOrReplace(k, v)
	}
}

// RemoveRange removes each of keys, best-effort: keys absent from the
// dictionary are silently skipped rather than failing the whole call.
func (d *Dictionary[K, V]) RemoveRange(keys []K) {
	for _, k := range keys {
		d.Remove(k)
	}
}

// Clear empties the dictionary, emitting one Removal per entry in
// iteration order.
func (d *Dictionary[K, V]) Clear() {
	if len(d.items) == 0 {
		return
	}
	for k, v := range d.items {
		d.record(changeset.NewKeyedRemoval(k, v))
	}
	d.items = make(map[K]V)
	d.dirty = true
	if d.enabled {
		d.builder.OnSourceCleared()
	}
}

// Reset clears the dictionary then re-adds pairs, producing (via the
// builder) a Clear or Reset classified batch depending on whether pairs is
// non-empty.
func (d *Dictionary[K, V]) Reset(pairs map[K]V) {
	d.Clear()
	d.AddOrReplaceRange(pairs)
}

// CaptureChangesAndClean returns the accumulated change set and clears the
// dirty flag. Returns the empty change set while change collection is
// disabled.
func (d *Dictionary[K, V]) CaptureChangesAndClean() changeset.KeyedChangeSet[K, V] {
	d.dirty = false
	if !d.enabled {
		return changeset.EmptyKeyedChangeSet[K, V]()
	}
	return d.builder.BuildAndClear(false)
}
