package keyedmap

// entry is a single node in a bucket chain. Chains are unordered singly
// linked lists and a key appears at most once per chain.
type entry[V any] struct {
	key   string
	value V
	next  *entry[V]
}

// lookup walks the chain starting at e and returns the node holding key, or
// nil if no node in the chain matches it exactly.
func (e *entry[V]) lookup(key string) *entry[V] {
	for ; e != nil; e = e.next {
		if e.key == key {
			return e
		}
	}
	return nil
}

// unlink removes the node holding key from the chain rooted at *link and
// returns it, or nil if the key is absent. link moves down the chain so that
// either the bucket head or the predecessor's next pointer is rewritten in
// place, the same way the chain was built.
func unlink[V any](link **entry[V], key string) *entry[V] {
	for *link != nil {
		if (*link).key == key {
			e := *link
			*link = e.next
			e.next = nil
			return e
		}
		link = &(*link).next
	}
	return nil
}
