package plan

import "errors"

// Sentinel errors surfaced by ReadPlan. Every plan-file error is
// fatal at startup (spec §7): callers wrap these with the offending
// path before reporting and exiting.
var (
	// ErrTruncatedPlan indicates the file ended before every declared
	// node or edge record was read.
	ErrTruncatedPlan = errors.New("plan: truncated plan file")
	// ErrMalformedRecord indicates a record had the wrong field count
	// or a field failed to parse as the expected integer type.
	ErrMalformedRecord = errors.New("plan: malformed record")
	// ErrNodeIndexOutOfRange indicates an edge record or the root node
	// id referenced a node index outside the declared node count.
	ErrNodeIndexOutOfRange = errors.New("plan: node index out of range")
)
