// Package graphstream composes a pair of stream.Relation views —
// forward (keyed by source) and reverse (keyed by destination) — of
// the same underlying directed graph into the root-prefix surface a
// plan.Executor walks (spec §4.7), grounded on
// original_source/src/wings_plan/graph_stream.rs.
package graphstream
