package core

import "errors"

// Sentinel errors for the domain model. Join primitives never return
// these from query paths (spec §7: "join primitives never fail, they
// only produce empty results") — they surface only from construction
// and file-parsing helpers built on top of this package.
var (
	// ErrEmptyPrefix indicates an operation required at least a root
	// edge (positions 0 and 1) but the Prefix was shorter.
	ErrEmptyPrefix = errors.New("core: prefix shorter than a root edge")

	// ErrNegativeTimestamp indicates a Timestamp constructed from a
	// negative or otherwise invalid logical clock value.
	ErrNegativeTimestamp = errors.New("core: timestamp must be non-negative")
)
