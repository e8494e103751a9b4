package index

import (
	"cmp"

	"github.com/katalvlaran/motifjoin/lsm"
)

// keyBound records, for one distinct key, the exclusive upper bound
// into CompactIndex.vals of that key's value run.
type keyBound[K cmp.Ordered] struct {
	key   K
	upper int
}

// CompactIndex is the read-only, sorted-by-key snapshot tier of an
// Index (spec §4.2). It is built once from an ordered iterator and
// never mutated again; ValuesFrom's cursor only ever advances, giving
// O(N) total cost across an ascending pass of key queries.
type CompactIndex[K cmp.Ordered, V any] struct {
	keys []keyBound[K]
	vals []V
}

// NewCompactIndex allocates an empty CompactIndex.
func NewCompactIndex[K cmp.Ordered, V any]() *CompactIndex[K, V] {
	return &CompactIndex[K, V]{}
}

// Load populates the CompactIndex from length (key, value) pairs
// delivered by next in ascending key order, overwriting any prior
// content.
func (c *CompactIndex[K, V]) Load(length int, next func() (K, V, bool)) {
	c.keys = c.keys[:0]
	c.vals = make([]V, 0, length)

	for {
		key, val, ok := next()
		if !ok {
			break
		}
		c.vals = append(c.vals, val)
		if n := len(c.keys); n == 0 || c.keys[n-1].key != key {
			c.keys = append(c.keys, keyBound[K]{key: key, upper: len(c.vals)})
		} else {
			c.keys[n-1].upper = len(c.vals)
		}
	}
}

// ValuesFrom reveals the slice of values for key, advancing cursor
// forward past it (and past any keys it skipped). cursor is owned by
// the caller and must be reused across a single ascending pass of key
// queries to get the promised O(N) total cost.
func (c *CompactIndex[K, V]) ValuesFrom(key K, cursor *int) []V {
	if *cursor >= len(c.keys) {
		return nil
	}

	*cursor += lsm.Advance(c.keys[*cursor:], func(kb keyBound[K]) bool { return kb.key < key })

	if *cursor >= len(c.keys) || c.keys[*cursor].key != key {
		return nil
	}

	lower := 0
	if *cursor > 0 {
		lower = c.keys[*cursor-1].upper
	}
	upper := c.keys[*cursor].upper
	*cursor++

	return c.vals[lower:upper]
}
