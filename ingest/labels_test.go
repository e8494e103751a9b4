package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/ingest"
)

func TestReadEdgeLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edge_labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 7 2\n# comment\n3 8 4\n"), 0o644))

	labels, err := ingest.ReadEdgeLabels(path)
	require.NoError(t, err)
	assert.Equal(t, []ingest.EdgeLabel{
		{Src: 1, Label: 7, Dst: 2},
		{Src: 3, Label: 8, Dst: 4},
	}, labels)
}

func TestReadEdgeLabels_MalformedLineErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edge_labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n"), 0o644))

	_, err := ingest.ReadEdgeLabels(path)
	assert.ErrorIs(t, err, ingest.ErrMalformedRecord)
}

func TestBuildEdgeLabels(t *testing.T) {
	entries := []ingest.EdgeLabel{
		{Src: 1, Label: 7, Dst: 2},
		{Src: 3, Label: 8, Dst: 4},
	}

	got := ingest.BuildEdgeLabels(entries)
	assert.Equal(t, uint32(7), got[core.Edge{Src: 1, Dst: 2}])
	assert.Equal(t, uint32(8), got[core.Edge{Src: 3, Dst: 4}])
	assert.Len(t, got, 2)
}

func TestReadVertexLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vertex_labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0\n2 1\n\n3 1\n"), 0o644))

	mapping, err := ingest.ReadVertexLabels(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), mapping.Vertex[core.Node(1)])
	assert.Equal(t, uint32(1), mapping.Vertex[core.Node(2)])
	assert.Equal(t, uint32(1), mapping.Vertex[core.Node(3)])
}
