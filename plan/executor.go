package plan

import (
	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/graphstream"
	"github.com/katalvlaran/motifjoin/stream"
)

// Executor walks a Plan's tree against one GraphStreamIndex shard,
// grounded on original_source/src/wings_plan/plan.rs's
// `track_motif`/`execute_node`.
type Executor struct {
	Plan    *Plan
	Graph   *graphstream.GraphStreamIndex
	Probe   *stream.Probe
	Counter *Counter
}

// NewExecutor builds an Executor for plan over graph, accumulating
// into counter.
func NewExecutor(plan *Plan, graph *graphstream.GraphStreamIndex, probe *stream.Probe, counter *Counter) *Executor {
	return &Executor{Plan: plan, Graph: graph, Probe: probe, Counter: counter}
}

// TrackMotif starts execution from the plan's root node, using
// rootPrefixes (the `[src, dst]` shaped delta edges for this batch,
// see graphstream.RootPrefixes) at startTime. When the Executor's
// Counter carries a LabelMapping, root prefixes whose endpoints or
// root edge don't satisfy its label constraints are dropped before
// the walk starts.
func (e *Executor) TrackMotif(rootPrefixes []stream.Weighted[core.Prefix], startTime core.Timestamp) {
	root := rootPrefixes
	if labels := e.Counter.labels; labels != nil {
		filtered := make([]stream.Weighted[core.Prefix], 0, len(rootPrefixes))
		for _, r := range rootPrefixes {
			if labels.permitsRoot(r.Prefix) {
				filtered = append(filtered, r)
			}
		}
		root = filtered
	}
	e.executeNode(e.Plan.RootNodeID, root, startTime)
}

func (e *Executor) executeNode(nodeIdx int, batch []stream.Weighted[core.Prefix], startTime core.Timestamp) {
	for _, edgeIdx := range e.Plan.OutgoingEdges(nodeIdx) {
		edge := e.Plan.Edges[edgeIdx]
		child := e.Plan.Nodes[edge.Dst]

		var output []stream.Weighted[core.Prefix]
		switch {
		case len(edge.extensions) == 0:
			output = e.applyIntersections(edge, batch, startTime)
		case len(edge.intersections) > 0:
			filtered := e.applyIntersections(edge, batch, startTime)
			output = e.applyExtensions(edge, filtered, startTime)
		default:
			output = e.applyExtensions(edge, batch, startTime)
		}

		if child.IsQuery {
			e.Counter.Add(output)
		}
		e.executeNode(edge.Dst, output, startTime)
	}
}

// applyExtensions runs the generic-join extend step over one plan
// edge's extension operations, then flat-maps each (p, extensions, w)
// into one (p++e, w) per extension (spec §4.8).
func (e *Executor) applyExtensions(edge PlanEdge, batch []stream.Weighted[core.Prefix], startTime core.Timestamp) []stream.Weighted[core.Prefix] {
	relations := make([]stream.Relation[core.Prefix], len(edge.extensions))
	for i, op := range edge.extensions {
		relations[i] = stream.Relation[core.Prefix]{
			Index:     e.Graph.IndexFor(op.IsForward),
			Key:       positionKey(op.SrcKey),
			IsForward: op.IsForward,
		}
	}

	proposed := stream.Extend(relations, batch, startTime)
	labels := e.Counter.labels

	var out []stream.Weighted[core.Prefix]
	for _, p := range proposed {
		for _, ext := range p.Extensions {
			if labels != nil && !labels.permitsExtension(p.Prefix, ext, edge.extensions) {
				continue
			}
			out = append(out, stream.Weighted[core.Prefix]{Prefix: p.Prefix.Extended(ext), Weight: p.Weight})
		}
	}
	return out
}

// applyIntersections runs the intersect-only step for every
// intersection operation on one plan edge, filtering batch down to
// prefixes that satisfy all of them; the prefix shape is unchanged
// (spec §4.6, §4.8).
func (e *Executor) applyIntersections(edge PlanEdge, batch []stream.Weighted[core.Prefix], startTime core.Timestamp) []stream.Weighted[core.Prefix] {
	if len(edge.intersections) == 0 {
		return batch
	}

	ops := make([]stream.IntersectOp[core.Prefix], len(edge.intersections))
	for i, op := range edge.intersections {
		var key1, key2 func(core.Prefix) core.Node
		if op.IsForward {
			key1, key2 = positionKey(op.SrcKey), positionKey(op.DstKey)
		} else {
			key1, key2 = positionKey(op.DstKey), positionKey(op.SrcKey)
		}

		ops[i] = stream.IntersectOp[core.Prefix]{
			Rel:  stream.Relation[core.Prefix]{Index: e.Graph.IndexFor(op.IsForward), Key: key1, IsForward: op.IsForward},
			Key1: key1,
			Key2: key2,
		}
	}

	return stream.IntersectOnly(ops, batch, e.Probe, startTime)
}

func positionKey(pos int) func(core.Prefix) core.Node {
	return func(p core.Prefix) core.Node { return p.At(pos) }
}
