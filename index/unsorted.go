package index

import (
	"cmp"
	"sort"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/lsm"
)

// Diff is one uncommitted, timestamped update held in an Unsorted
// buffer: key k, value v, logical time, and signed weight.
type Diff[K cmp.Ordered, V cmp.Ordered] struct {
	Key    K
	Value  V
	Time   core.Timestamp
	Weight core.Weight
}

// Unsorted is the append-only, re-sorted-on-insert diffs tier of an
// Index (spec §4.3): every Extend call appends then re-sorts the
// whole buffer by (key, value), and tracks the minimum resident time
// so Index.Count can cheaply tell whether any diff could possibly
// apply to a query at a given start time.
type Unsorted[K cmp.Ordered, V cmp.Ordered] struct {
	updates []Diff[K, V]
	minTime *core.Timestamp
}

// NewUnsorted allocates an empty Unsorted buffer.
func NewUnsorted[K cmp.Ordered, V cmp.Ordered]() *Unsorted[K, V] {
	return &Unsorted[K, V]{}
}

// Len reports how many diffs are currently resident.
func (u *Unsorted[K, V]) Len() int { return len(u.updates) }

// MinTime reports the minimum Time among resident diffs, or false if
// the buffer is empty.
func (u *Unsorted[K, V]) MinTime() (core.Timestamp, bool) {
	if u.minTime == nil {
		return 0, false
	}
	return *u.minTime, true
}

// ValuesFrom returns the contiguous slice of diffs with Key == key,
// advancing cursor past it. Two galloping passes locate the slice:
// first skip keys < key, then extend through keys == key.
func (u *Unsorted[K, V]) ValuesFrom(key K, cursor *int) []Diff[K, V] {
	*cursor += lsm.Advance(u.updates[*cursor:], func(d Diff[K, V]) bool { return d.Key < key })
	step := lsm.Advance(u.updates[*cursor:], func(d Diff[K, V]) bool { return d.Key <= key })
	result := u.updates[*cursor:][:step]
	*cursor += step
	return result
}

// DiffInput is one (key, value, weight) update to be timestamped and
// appended by Extend.
type DiffInput[K cmp.Ordered, V cmp.Ordered] struct {
	Key    K
	Value  V
	Weight core.Weight
}

// Extend appends every (key, value, weight) in items at time, then
// re-sorts the whole buffer by (key, value) and refreshes MinTime.
func (u *Unsorted[K, V]) Extend(time core.Timestamp, items []DiffInput[K, V]) {
	for _, it := range items {
		u.updates = append(u.updates, Diff[K, V]{Key: it.Key, Value: it.Value, Time: time, Weight: it.Weight})
	}
	sort.Slice(u.updates, func(i, j int) bool {
		a, b := u.updates[i], u.updates[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Value < b.Value
	})

	if u.minTime == nil || *u.minTime > time {
		t := time
		u.minTime = &t
	}
}

// Retain keeps only the diffs for which keep returns true, in place.
// Used by MergeTo to drop zero-weighted, now-committed diffs.
func (u *Unsorted[K, V]) Retain(keep func(Diff[K, V]) bool) {
	n := 0
	for _, d := range u.updates {
		if keep(d) {
			u.updates[n] = d
			n++
		}
	}
	u.updates = u.updates[:n]

	u.minTime = nil
	for _, d := range u.updates {
		if u.minTime == nil || *u.minTime > d.Time {
			t := d.Time
			u.minTime = &t
		}
	}
}

// All returns the full resident diff slice, in (key, value) order.
// MergeTo walks this directly rather than through ValuesFrom.
func (u *Unsorted[K, V]) All() []Diff[K, V] { return u.updates }

// SetWeight zeroes (or otherwise rewrites) the weight of the diff at
// position i. MergeTo uses this to mark a diff committed.
func (u *Unsorted[K, V]) SetWeight(i int, w core.Weight) { u.updates[i].Weight = w }
