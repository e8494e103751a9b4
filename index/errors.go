package index

import "errors"

// Sentinel errors for Index construction. Query primitives
// (Count/Propose/Intersect/IntersectOnly) never return an error (spec
// §7): a missing key simply yields an empty slice.
var (
	// ErrInitializeNotAscending indicates Initialize was handed a key's
	// value group that was not sorted in non-decreasing order, which
	// would break Intersect/IntersectOnly's galloping search over that
	// group.
	ErrInitializeNotAscending = errors.New("index: a key's initial value group must be in ascending order")
)
