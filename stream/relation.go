package stream

import (
	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/index"
)

// Relation is one directed view of a graphstream.GraphStreamIndex
// (forward or reverse) bound to the prefix attribute it is queried
// on, grounded on original_source/src/timely_rule/mod.rs's
// StreamPrefixExtender trait and wings_plan/mod.rs's
// `extend_using`/`intersect_using` call sites. A Relation is the unit
// Extend and IntersectOnly compose: one per PlanOperation.
type Relation[P core.Indexable] struct {
	Index     *index.Index
	Key       func(P) core.Node
	IsForward bool
}

// Count delegates to index.Count using this Relation's key and
// direction-independent counting rule (spec §4.4: Count never differs
// between forward and reverse views of the same underlying relation).
func (r Relation[P]) Count(data []index.CountEntry[P], startTime core.Timestamp, ident uint64) {
	index.Count(r.Index, data, r.Key, startTime, ident)
}

// Propose delegates to ForwardPropose or ReversePropose per
// IsForward.
func (r Relation[P]) Propose(data []index.ProposeEntry[P], startTime core.Timestamp) {
	if r.IsForward {
		index.ForwardPropose(r.Index, data, r.Key, startTime)
	} else {
		index.ReversePropose(r.Index, data, r.Key, startTime)
	}
}

// Intersect delegates to index.Intersect.
func (r Relation[P]) Intersect(data []index.ProposeEntry[P], startTime core.Timestamp) {
	index.Intersect(r.Index, data, r.Key, r.IsForward, startTime)
}

// IntersectOnly delegates to index.IntersectOnly, using key1/key2 as
// the (bound, candidate) pair — the generalization PlanEdge needs
// since a single Relation only carries one key function (spec §4.8,
// `get_intersect_attributes`).
func (r Relation[P]) IntersectOnly(data []index.IntersectOnlyEntry[P], key1, key2 func(P) core.Node, startTime core.Timestamp) []index.IntersectOnlyEntry[P] {
	return index.IntersectOnly(r.Index, data, key1, key2, r.IsForward, startTime)
}
