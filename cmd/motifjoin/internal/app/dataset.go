package app

import (
	"fmt"
	"os"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/ingest"
)

// edgeSource abstracts over a single edge-list file and a directory
// of shard files (spec §6's "directory variant"), so the batch loop
// doesn't need to know which one backs the dataset argument.
type edgeSource interface {
	ReadEdges(num int) ([]core.Edge, error)
	Close() error
}

// openDataset opens path as a single-file or directory edge source,
// detected by stat.
func openDataset(path string) (edgeSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset %s: %w", path, err)
	}
	if info.IsDir() {
		return ingest.NewDirEdgeReader(path)
	}
	return ingest.NewEdgeReader(path)
}
