package plan

import (
	"fmt"
	"strings"
	"sync"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/stream"
)

// VertexLabels maps a vertex to its label, as loaded by
// ingest.ReadVertexLabels from a vertex-label file (spec §6).
type VertexLabels map[core.Node]uint32

// EdgeLabels maps a directed edge to its label, as loaded by
// ingest.ReadEdgeLabels/ingest.BuildEdgeLabels from an edge-label file
// (spec §6). Keyed by the motif's matched edges: the graph edge each
// extension step actually binds, reconstructed from a PlanOperation's
// (SrcKey, IsForward) pair and the newly proposed vertex (see
// Executor.applyExtensions).
type EdgeLabels map[core.Edge]uint32

// LabelMapping supplements plain match counting with per-labeled-
// tuple breakdowns, and — when a vertex or edge has no entry in the
// relevant map — excludes the match outright (spec §4.8 "if label
// mappings are provided, additionally accumulate per-labeled-tuple
// counts"; SPEC_FULL §C.1 "a query can require that matched
// vertices/edges carry specific labels"), grounded on
// original_source/examples/wings_plan_labeled_vertex_from_file.rs's
// `vertex_id_label_map` + `labeled_query_count` pairing and
// wings_plan_labeled_edges_from_file.rs's edge-label counterpart —
// both call `track_motif` overloads whose bodies are not present in
// the retrieved source, so both the accumulation rule
// (label tuple of every bound prefix position, summed by weight) and
// the filtering rule (every matched vertex/edge must carry a label)
// are this package's own, idiomatic reconstruction. Either field may
// be nil to skip that half's constraint entirely.
type LabelMapping struct {
	Vertex VertexLabels
	Edge   EdgeLabels
}

func (lm *LabelMapping) labelKey(p core.Prefix) string {
	var b strings.Builder
	for i := 0; i < p.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", lm.Vertex[p.At(i)])
	}
	return b.String()
}

// hasVertexLabel reports whether v carries a recorded label. Vertex
// nil means no vertex-label constraint is active, so every vertex
// passes.
func (lm *LabelMapping) hasVertexLabel(v core.Node) bool {
	if lm.Vertex == nil {
		return true
	}
	_, ok := lm.Vertex[v]
	return ok
}

// hasEdgeLabel reports whether e carries a recorded label. Edge nil
// means no edge-label constraint is active, so every edge passes.
func (lm *LabelMapping) hasEdgeLabel(e core.Edge) bool {
	if lm.Edge == nil {
		return true
	}
	_, ok := lm.Edge[e]
	return ok
}

// permitsRoot reports whether a root prefix's two endpoints and root
// edge satisfy this mapping's label constraints.
func (lm *LabelMapping) permitsRoot(p core.Prefix) bool {
	return lm.hasVertexLabel(p.Src()) && lm.hasVertexLabel(p.Dst()) &&
		lm.hasEdgeLabel(core.Edge{Src: p.Src(), Dst: p.Dst()})
}

// permitsExtension reports whether a newly proposed vertex, and every
// graph edge the extension operations ops bind it into, satisfy this
// mapping's label constraints. prefix is the parent prefix the
// extension is applied to (not yet including newVertex).
func (lm *LabelMapping) permitsExtension(prefix core.Prefix, newVertex core.Node, ops []PlanOperation) bool {
	if !lm.hasVertexLabel(newVertex) {
		return false
	}
	for _, op := range ops {
		var e core.Edge
		if op.IsForward {
			e = core.Edge{Src: prefix.At(op.SrcKey), Dst: newVertex}
		} else {
			e = core.Edge{Src: newVertex, Dst: prefix.At(op.SrcKey)}
		}
		if !lm.hasEdgeLabel(e) {
			return false
		}
	}
	return true
}

// Counter accumulates match counts at query leaves: a running total,
// and — when a LabelMapping is attached — per-labeled-tuple totals
// keyed by the comma-joined label sequence of the matching prefix.
// Guarded by a single mutex local to the cell, per spec §5's "Shared
// resource policy".
type Counter struct {
	mu      sync.Mutex
	total   int64
	labeled map[string]int64
	labels  *LabelMapping
}

// NewCounter allocates a Counter. labels may be nil to skip
// per-labeled-tuple accumulation entirely.
func NewCounter(labels *LabelMapping) *Counter {
	c := &Counter{labels: labels}
	if labels != nil {
		c.labeled = make(map[string]int64)
	}
	return c
}

// Add accumulates every surviving prefix's weight into the running
// total, and — if labels are attached — into its labeled-tuple bucket.
func (c *Counter) Add(matches []stream.Weighted[core.Prefix]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range matches {
		c.total += int64(m.Weight)
		if c.labels != nil {
			c.labeled[c.labels.labelKey(m.Prefix)] += int64(m.Weight)
		}
	}
}

// Total reports the accumulated match count.
func (c *Counter) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Labeled reports a snapshot copy of the per-labeled-tuple counts, or
// nil if no LabelMapping was attached.
func (c *Counter) Labeled() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.labeled == nil {
		return nil
	}
	out := make(map[string]int64, len(c.labeled))
	for k, v := range c.labeled {
		out[k] = v
	}
	return out
}
