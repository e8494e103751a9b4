// Package core defines the domain model shared by every other
// motifjoin package: graph Nodes and Edges, signed integer Weights,
// an ordered logical Timestamp, and the Prefix abstraction that the
// worst-case optimal join machinery grows one attribute at a time.
//
// Nothing in this package is thread-safe on its own; callers that share
// a Prefix or Index across goroutines are expected to serialize access
// the way the rest of motifjoin does (see runtime.Scheduler), mirroring
// the single-owner-per-worker discipline described in spec §5.
package core
