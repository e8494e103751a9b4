package stream

import (
	"math"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/index"
)

// Weighted is one (prefix, signed multiplicity) record, the batch
// element type every stream operator consumes and produces (the Go
// analogue of the Rust dataflow's `(P, i32)` stream elements).
type Weighted[P core.Indexable] struct {
	Prefix P
	Weight core.Weight
}

// Extend grows every prefix in batch by one attribute using the
// worst-case-optimal generic join algorithm, grounded verbatim on
// original_source/src/timely_rule/mod.rs's
// `impl GenericJoin for Stream<(P,W)>::extend`: with a single
// relation, propose directly; otherwise count against every relation
// to pick, per prefix, the relation with the smallest bound, propose
// only from the winner, then validate against every other relation,
// finally concatenating all partitions back together (spec §4.5-§4.6).
func Extend[P core.Indexable](relations []Relation[P], batch []Weighted[P], startTime core.Timestamp) []index.ProposeEntry[P] {
	if len(relations) == 0 {
		return nil
	}

	if len(relations) == 1 {
		data := make([]index.ProposeEntry[P], len(batch))
		for i, w := range batch {
			data[i] = index.ProposeEntry[P]{Prefix: w.Prefix, Weight: w.Weight}
		}
		relations[0].Propose(data, startTime)
		return data
	}

	counts := make([]index.CountEntry[P], len(batch))
	for i, w := range batch {
		counts[i] = index.CountEntry[P]{Prefix: w.Prefix, Count: math.MaxUint64, Ident: 0, Weight: w.Weight}
	}
	for ident, rel := range relations {
		rel.Count(counts, startTime, uint64(ident))
	}

	partitions := make([][]index.ProposeEntry[P], len(relations))
	for _, c := range counts {
		partitions[c.Ident] = append(partitions[c.Ident], index.ProposeEntry[P]{Prefix: c.Prefix, Weight: c.Weight})
	}

	var results []index.ProposeEntry[P]
	for winner, nominations := range partitions {
		if len(nominations) == 0 {
			continue
		}

		relations[winner].Propose(nominations, startTime)
		for other, rel := range relations {
			if other == winner {
				continue
			}
			rel.Intersect(nominations, startTime)
		}

		results = append(results, nominations...)
	}

	return results
}
