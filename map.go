// Package keyedmap provides a string-keyed hash table that resists
// hash-flooding attacks by keying its digests with a per-table random secret.
package keyedmap

import "io"

// Map is a hash table from string keys to values of type V. Bucket selection
// uses SipHash-2-4 keyed with a secret generated at construction, so key
// distributions cannot be predicted (and therefore not attacked) from outside
// the process. Collisions are resolved by chaining and bucket storage doubles
// once the load factor reaches 0.75.
//
// A Map is not safe for concurrent use. Callers that share one across
// goroutines must serialize access externally.
//
// All methods are no-ops returning the zero result when called on a nil Map.
type Map[V any] struct {
	len     uintptr
	buckets []*entry[V]
	keyer   keyer
}

// New returns an empty Map with a fresh random secret and no bucket storage.
// Storage is allocated on the first Set, starting at 8 buckets.
func New[V any]() *Map[V] {
	return NewWithSecretSource[V](nil)
}

// NewWithBuckets returns an empty Map with bucket storage preallocated to the
// given size. The map still doubles its storage under the usual load factor
// rule.
func NewWithBuckets[V any](buckets uintptr) *Map[V] {
	return NewWithSecretSource[V](nil, buckets)
}

// NewWithSecretSource returns an empty Map whose secret is read from src
// instead of crypto/rand, with an optional preallocated bucket count. A
// deterministic src yields a map whose bucket layout is reproducible, which is
// only useful for tests; production maps should use New. Returns nil if src
// cannot provide a full secret.
func NewWithSecretSource[V any](src io.Reader, buckets ...uintptr) *Map[V] {
	kr, ok := newKeyer(src)
	if !ok {
		return nil
	}
	m := &Map[V]{keyer: kr}
	if len(buckets) > 0 && buckets[0] != 0 {
		m.buckets = make([]*entry[V], buckets[0])
	}
	return m
}

// Set stores value under key and returns the previous value if the key was
// already present. The node and its key are reused on replacement; only the
// value changes. The growth rule runs before every Set, including ones that
// end up replacing.
func (m *Map[V]) Set(key string, value V) (old V, replaced bool) {
	if m == nil {
		return
	}
	m.growIfNeeded()
	if len(m.buckets) == 0 {
		return
	}

	head := &m.buckets[m.bucketIndex(key)]
	if e := (*head).lookup(key); e != nil {
		old, replaced = e.value, true
		e.value = value
		return
	}

	*head = &entry[V]{key: key, value: value, next: *head}
	m.len++
	return
}

// Get returns the value stored under key. Get never mutates the map and never
// triggers growth.
func (m *Map[V]) Get(key string) (value V, ok bool) {
	if m == nil || len(m.buckets) == 0 {
		return
	}
	if e := m.buckets[m.bucketIndex(key)].lookup(key); e != nil {
		value, ok = e.value, true
	}
	return
}

// Del removes key from the map and returns the value it held. Deleting an
// absent key is a no-op returning ok=false.
func (m *Map[V]) Del(key string) (value V, ok bool) {
	if m == nil || len(m.buckets) == 0 {
		return
	}
	if e := unlink(&m.buckets[m.bucketIndex(key)], key); e != nil {
		m.len--
		value, ok = e.value, true
	}
	return
}

// Len returns the number of key-value pairs within the map.
func (m *Map[V]) Len() uintptr {
	if m == nil {
		return 0
	}
	return m.len
}

// IsEmpty reports whether the map holds no pairs.
func (m *Map[V]) IsEmpty() bool {
	return m.Len() == 0
}

// LoadFactor returns the ratio of pairs to buckets, or 0 for a map that has
// no bucket storage yet.
func (m *Map[V]) LoadFactor() float64 {
	if m == nil || len(m.buckets) == 0 {
		return 0
	}
	return float64(m.len) / float64(len(m.buckets))
}

// Free unlinks every chain and drops the bucket storage so the garbage
// collector can reclaim entries even while the handle itself stays
// referenced. The map must not be used after Free.
func (m *Map[V]) Free() {
	if m == nil {
		return
	}
	for i, e := range m.buckets {
		for e != nil {
			next := e.next
			e.next = nil
			e = next
		}
		m.buckets[i] = nil
	}
	m.buckets = nil
	m.len = 0
}

// bucketIndex maps a key's digest onto the current bucket storage.
func (m *Map[V]) bucketIndex(key string) uint64 {
	return m.keyer.digest(key) % uint64(len(m.buckets))
}

// growIfNeeded applies the growth rule ahead of an insert: a map with no
// storage gets defaultBuckets slots, and storage doubles once the load factor
// reaches 0.75.
func (m *Map[V]) growIfNeeded() {
	if len(m.buckets) == 0 {
		m.grow(defaultBuckets)
	} else if growthNeeded(m.len, uintptr(len(m.buckets))) {
		m.grow(uintptr(len(m.buckets)) * 2)
	}
}

// grow widens bucket storage to newBuckets slots, never shrinking. Chains
// keep the slot index they were built at and are not redistributed under the
// wider modulus; see the stranding note on grow_test.go before changing this.
func (m *Map[V]) grow(newBuckets uintptr) {
	if uintptr(len(m.buckets)) >= newBuckets {
		return
	}
	wider := make([]*entry[V], newBuckets)
	copy(wider, m.buckets)
	m.buckets = wider
}
