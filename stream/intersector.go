package stream

import (
	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/index"
)

// IntersectOp is one (src, dst) attribute test against one Relation —
// the Go shape of a PlanOperation on the intersect-only branch (spec
// §4.8, `get_intersect_attributes`): Key1 extracts the bound prefix
// attribute to look up, Key2 the already-bound candidate to validate.
type IntersectOp[P core.Indexable] struct {
	Rel  Relation[P]
	Key1 func(P) core.Node
	Key2 func(P) core.Node
}

// IntersectOnly validates every prefix in batch against each op in
// turn, returning the surviving subset. probe gates each op: the
// caller must have advanced probe to at least startTime (normally
// right after committing that batch's updates via Index.MergeTo)
// before this call proceeds, grounded on
// original_source/src/wings_rule/intersector.rs's unary operator
// (`if !handle.less_equal(time.time())`).
func IntersectOnly[P core.Indexable](ops []IntersectOp[P], batch []Weighted[P], probe *Probe, startTime core.Timestamp) []Weighted[P] {
	probe.WaitSafe(startTime)

	data := make([]index.IntersectOnlyEntry[P], len(batch))
	for i, w := range batch {
		data[i] = index.IntersectOnlyEntry[P]{Prefix: w.Prefix, Weight: w.Weight}
	}

	for _, op := range ops {
		if len(data) == 0 {
			break
		}
		data = op.Rel.IntersectOnly(data, op.Key1, op.Key2, startTime)
	}

	out := make([]Weighted[P], len(data))
	for i, e := range data {
		out[i] = Weighted[P]{Prefix: e.Prefix, Weight: e.Weight}
	}
	return out
}
