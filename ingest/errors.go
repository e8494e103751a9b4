package ingest

import "errors"

// ErrMalformedRecord is returned when a line does not carry the
// expected number of whitespace-separated fields, or a field does not
// parse as the expected integer type.
var ErrMalformedRecord = errors.New("ingest: malformed record")

// ErrEmptyDirectory is returned by NewDirEdgeReader when the shard
// directory contains no files to read.
var ErrEmptyDirectory = errors.New("ingest: directory has no edge-list files")
