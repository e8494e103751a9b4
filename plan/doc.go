// Package plan implements the motif plan tree and its executor (spec
// §4.8): Plan is a directed acyclic tree of PlanNodes connected by
// PlanEdges, each PlanEdge carrying the PlanOperations that grow or
// test a prefix as execution moves from a parent node's subgraph
// shape to a child's. Executor.TrackMotif walks the tree starting
// from the root's delta-edge prefixes, applying generic-join extend
// steps and intersect-only tests per plan edge, and accumulates match
// counts at query leaves.
//
// Grounded on original_source/src/wings_plan/plan.rs.
package plan
