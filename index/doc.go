// Package index implements Index, the per-relation, per-worker-shard
// multiversion multimap that is the worst-case-optimal join's sole
// data structure (spec §4.2-§4.4). An Index answers three primitives
// against a sorted-by-key batch of prefixes: Count (a cheap upper
// bound used to pick the cheapest relation to extend by), the
// forward/reverse Propose pair (produce candidate extensions), and
// Intersect / IntersectOnly (validate or test proposals from other
// relations).
//
// An Index is composed of three tiers, read oldest-to-newest:
//
//   - compact: an immutable sorted snapshot loaded once at startup.
//   - edges: a lsm.EdgeList per key holding committed, uncompacted
//     updates.
//   - diffs: an unsorted, re-sorted-on-insert buffer of uncommitted
//     timestamped updates.
//
// Index.MergeTo is the only path that promotes diffs into edges; it
// never touches compact. Compacting edges into compact is a valid
// extension this package does not implement (spec §3, "Lifecycle").
package index
