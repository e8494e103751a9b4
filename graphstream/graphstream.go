package graphstream

import (
	"fmt"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/index"
	"github.com/katalvlaran/motifjoin/stream"
)

func forwardKey(p core.Prefix) core.Node { return p.Src() }
func reverseKey(p core.Prefix) core.Node { return p.Dst() }

// GraphStreamIndex composes the forward (keyed by source) and reverse
// (keyed by destination) views of one directed graph shard, grounded
// on original_source/src/wings_plan/graph_stream.rs's
// `GraphStreamIndex::from`.
type GraphStreamIndex struct {
	Forward stream.Relation[core.Prefix]
	Reverse stream.Relation[core.Prefix]

	forward *index.Index
	reverse *index.Index
}

// IndexFor returns the forward or reverse Index by direction, letting
// callers outside this package (plan.Executor) build their own
// Relation views keyed on an arbitrary prefix position rather than
// the fixed Src()/Dst() keys Forward and Reverse use.
func (g *GraphStreamIndex) IndexFor(isForward bool) *index.Index {
	if isForward {
		return g.forward
	}
	return g.reverse
}

// Handle lets a caller commit both the forward and reverse indexes
// up to the same logical time coherently, grounded on
// graph_stream.rs's `GraphStreamIndexHandle::merge_to`.
type Handle struct {
	forward *index.Index
	reverse *index.Index
}

// MergeTo absorbs every diff at or before time into both indexes.
func (h *Handle) MergeTo(time core.Timestamp) {
	h.forward.MergeTo(time)
	h.reverse.MergeTo(time)
}

// New allocates an empty forward/reverse index pair and its shared
// commit handle.
func New() (*GraphStreamIndex, *Handle) {
	forward := index.New()
	reverse := index.New()

	gsi := &GraphStreamIndex{
		Forward: stream.Relation[core.Prefix]{Index: forward, Key: forwardKey, IsForward: true},
		Reverse: stream.Relation[core.Prefix]{Index: reverse, Key: reverseKey, IsForward: false},
		forward: forward,
		reverse: reverse,
	}
	handle := &Handle{forward: forward, reverse: reverse}
	return gsi, handle
}

// Initialize bulk-loads both indexes from the same initial edge set:
// forwardGroups is keyed by src, reverseGroups by dst (the caller
// builds both from the same edge list, transposed for the reverse
// side — see ingest.BuildIndexGroups).
func (g *GraphStreamIndex) Initialize(forwardGroups, reverseGroups [][]core.Node) error {
	if err := g.forward.Initialize(forwardGroups); err != nil {
		return fmt.Errorf("forward index: %w", err)
	}
	if err := g.reverse.Initialize(reverseGroups); err != nil {
		return fmt.Errorf("reverse index: %w", err)
	}
	return nil
}

// Update pushes a batch of delta edges into both indexes: forward
// keyed as (src, dst), reverse keyed as (dst, src) with weight
// untouched (spec §4.7).
func (g *GraphStreamIndex) Update(time core.Timestamp, updates []core.Update) {
	g.forward.Update(time, updates)

	transposed := make([]core.Update, len(updates))
	for i, u := range updates {
		transposed[i] = core.Update{Edge: core.Edge{Src: u.Edge.Dst, Dst: u.Edge.Src}, Weight: u.Weight}
	}
	g.reverse.Update(time, transposed)
}

// RootPrefixes reshapes a delta batch into the root `[src, dst]`
// prefixes a plan.Executor starts tracking from (spec §4.7,
// graph_stream.rs's `updates` stream).
func RootPrefixes(updates []core.Update) []stream.Weighted[core.Prefix] {
	out := make([]stream.Weighted[core.Prefix], len(updates))
	for i, u := range updates {
		out[i] = stream.Weighted[core.Prefix]{Prefix: core.RootPrefix(u.Edge), Weight: u.Weight}
	}
	return out
}
