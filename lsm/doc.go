// Package lsm implements EdgeList, the log-structured-merge cell that
// backs one key's committed-but-uncompacted updates inside an Index
// (spec §4.1). It holds a growing collection of sorted runs of
// (value, weight) pairs, merging runs only when their sizes drift out
// of the geometric invariant, and answers proposal and intersection
// queries by galloping through the runs newest-to-oldest.
//
// Concurrency: an EdgeList is owned by exactly one Index key slot,
// mutated single-threaded within one worker's operator closure (spec
// §5); it has no internal locking.
package lsm
