// Package stream implements the generic-join dataflow layer: Relation
// wraps one directed index.Index as a prefix extender exposing
// count/propose/intersect, Extend composes several Relations into one
// worst-case-optimal extension step, and IntersectOnly validates an
// already-complete prefix against one more relation without growing
// it.
//
// A timely-dataflow operator graph would feed these primitives
// continuously from an unbounded update stream; this package instead
// re-expresses the same three-primitive contract over discrete
// batches (one core.Timestamp per call). Batch boundaries and
// cross-worker fan-out are the runtime package's concern; this
// package only ever touches the Index instances it is handed, never
// spawning goroutines itself.
package stream
