package lsm

import (
	"cmp"
	"sort"

	"github.com/katalvlaran/motifjoin/core"
)

// Record is one (value, weight) update held in an EdgeList run.
type Record[V cmp.Ordered] struct {
	Value  V
	Weight core.Weight
}

// EdgeList is the LSM-style list of updates for one Index key (spec
// §4.1). values holds sorted runs back to back; bounds records where
// each run after the first (oldest) starts (tail to head: the newest run is
// values[bounds[len(bounds)-1]:]). An empty bounds means values is a
// single sorted run. count is the running sum of every weight ever
// pushed, tracked for O(1) access regardless of how many runs exist.
type EdgeList[V cmp.Ordered] struct {
	bounds []int
	values []Record[V]
	effort uint32
	count  core.Weight
}

// New allocates an empty EdgeList.
func New[V cmp.Ordered]() *EdgeList[V] {
	return &EdgeList[V]{}
}

// Count returns the accumulated weight of every update ever pushed.
func (e *EdgeList[V]) Count() core.Weight { return e.count }

// Position reports the current write cursor, values.len().
func (e *EdgeList[V]) Position() int { return len(e.values) }

// Push appends update without sorting it into place and adjusts
// Count. Callers push a batch of updates at a known sorted position,
// then call SealFrom with the position Position() returned before the
// first push.
func (e *EdgeList[V]) Push(value V, weight core.Weight) {
	e.count += weight
	e.values = append(e.values, Record[V]{Value: value, Weight: weight})
}

// SealFrom finalizes the run of updates pushed since position (spec
// §4.1 run-size geometry). If the new run is shorter than half the
// run that precedes it, it is recorded as a boundary, consolidated on
// its own (sorted and deduplicated) but left unmerged with older runs
// (merge deferred). Otherwise the tail is merged: boundaries are
// popped while the second-to-last region is less than twice the size
// of the last, and if a single boundary remains before the list's
// midpoint it is dropped entirely (the list becomes one sorted run),
// followed by consolidateTail.
func (e *EdgeList[V]) SealFrom(position int) {
	if len(e.values) <= position {
		return
	}

	prevBoundStart := 0
	if n := len(e.bounds); n > 0 {
		prevBoundStart = e.bounds[n-1]
	}
	prevRun := position - prevBoundStart

	if len(e.values)-position < prevRun/2 {
		e.bounds = append(e.bounds, position)
		e.consolidateTail()
		return
	}

	for len(e.bounds) >= 2 &&
		e.bounds[len(e.bounds)-1]-e.bounds[len(e.bounds)-2] < 2*(len(e.values)-e.bounds[len(e.bounds)-1]) {
		e.bounds = e.bounds[:len(e.bounds)-1]
	}

	if len(e.bounds) == 1 && e.bounds[0] < len(e.values)/2 {
		e.bounds = nil
	}

	e.consolidateTail()
}

// Proposals forces a full consolidation (fuses every run into one
// sorted, zero-weight-free run) and returns it. This is the
// forward/reverse propose path's read of "everything committed for
// this key".
func (e *EdgeList[V]) Proposals() []Record[V] {
	if len(e.bounds) > 0 {
		e.bounds = nil
		e.consolidateTail()
	}
	return e.values
}

// consolidateTail sorts the region from the last boundary (or the
// start, if none) to the end by value, then merges equal values by
// summing their weights, dropping any that land on zero.
func (e *EdgeList[V]) consolidateTail() {
	bound := 0
	if n := len(e.bounds); n > 0 {
		bound = e.bounds[n-1]
	}

	tail := e.values[bound:]
	sort.Slice(tail, func(i, j int) bool { return tail[i].Value < tail[j].Value })

	cursor := bound
	for index := bound + 1; index < len(e.values); index++ {
		if e.values[index].Value == e.values[cursor].Value {
			e.values[cursor].Weight += e.values[index].Weight
		} else {
			if e.values[cursor].Weight != 0 {
				cursor++
			}
			e.values[cursor], e.values[index] = e.values[index], e.values[cursor]
		}
	}
	if e.values[cursor].Weight != 0 {
		cursor++
	}
	e.values = e.values[:cursor]
}

// Expend signals that effort units of work are about to be spent
// against this EdgeList (e.g. intersecting a large proposal batch). If
// the effort accumulated since Expend last coalesced the list exceeds the
// list's length, the whole list is coalesced into a single sorted run
// so the pending work doesn't have to gallop across many small runs.
func (e *EdgeList[V]) Expend(effort uint32) {
	if len(e.bounds) > 0 {
		e.effort += effort
		if int(e.effort) > len(e.values) {
			e.bounds = nil
			e.consolidateTail()
			e.effort = 0
		}
	}
}

// Intersect accumulates, for each position i in values, the signed
// weight of matching updates across every run into temp[i]. temp must
// be pre-zeroed and the same length as values.
func (e *EdgeList[V]) Intersect(values []V, temp []core.Weight) {
	slice := e.values
	for i := len(e.bounds) - 1; i >= 0; i-- {
		bound := e.bounds[i]
		intersectHelper(values, slice[bound:], temp)
		slice = slice[:bound]
	}
	intersectHelper(values, slice, temp)
}

// intersectHelper merges the strictly-sorted source against one sorted
// run of updates by galloping: on a mismatch, the lagging side
// advances by 1+Advance(...), exponential-then-binary search for the
// crossing point, rather than a plain linear scan.
func intersectHelper[V cmp.Ordered](source []V, updates []Record[V], counts []core.Weight) {
	sCursor, uCursor := 0, 0
	for sCursor < len(source) && uCursor < len(updates) {
		switch {
		case source[sCursor] < updates[uCursor].Value:
			step := 1 + Advance(source[sCursor+1:], func(x V) bool { return x < updates[uCursor].Value })
			sCursor += step
		case source[sCursor] == updates[uCursor].Value:
			counts[sCursor] += updates[uCursor].Weight
			sCursor++
			uCursor++
		default:
			target := source[sCursor]
			step := 1 + Advance(updates[uCursor+1:], func(x Record[V]) bool { return x.Value < target })
			uCursor += step
		}
	}
}
