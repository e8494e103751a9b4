// Package ingest reads the flat-file formats that seed and drive a
// motif-join run (spec §6): plain edge lists, directories of
// concatenated edge-list shards, and the optional vertex-label table
// used for labeled counting (plan.LabelMapping).
//
// Grounded on original_source/src/wings_plan/dir_reader.rs's
// DirReader, which this package splits into a single-file EdgeReader
// and a multi-file DirEdgeReader sharing the same line-parsing rules.
package ingest
