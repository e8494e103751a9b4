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

func TestEdgeReader_SkipsCommentsAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\n1 2\n\n3 4\n"), 0o644))

	r, err := ingest.NewEdgeReader(path)
	require.NoError(t, err)
	defer r.Close()

	edges, err := r.ReadEdges(10)
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{Src: 1, Dst: 2}, {Src: 3, Dst: 4}}, edges)
}

func TestEdgeReader_PartialReadThenExhausted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n3 4\n"), 0o644))

	r, err := ingest.NewEdgeReader(path)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.ReadEdges(1)
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{Src: 1, Dst: 2}}, first)

	rest, err := r.ReadEdges(10)
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{Src: 3, Dst: 4}}, rest)

	empty, err := r.ReadEdges(10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEdgeReader_MalformedLineErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 notanumber\n"), 0o644))

	r, err := ingest.NewEdgeReader(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadEdges(10)
	assert.ErrorIs(t, err, ingest.ErrMalformedRecord)
}

func TestDirEdgeReader_ConcatenatesSortedShards(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("5 6\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("1 2\n# comment\n3 4\n"), 0o644))

	r, err := ingest.NewDirEdgeReader(dir)
	require.NoError(t, err)
	defer r.Close()

	edges, err := r.ReadEdges(10)
	require.NoError(t, err)
	// a.txt sorts before b.txt, so its edges come first despite b.txt
	// having been written to disk first.
	assert.Equal(t, []core.Edge{{Src: 1, Dst: 2}, {Src: 3, Dst: 4}, {Src: 5, Dst: 6}}, edges)
}

func TestDirEdgeReader_AcrossReadEdgesCalls(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.txt"), []byte("1 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.txt"), []byte("3 4\n"), 0o644))

	r, err := ingest.NewDirEdgeReader(dir)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.ReadEdges(1)
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{Src: 1, Dst: 2}}, first)

	second, err := r.ReadEdges(1)
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{Src: 3, Dst: 4}}, second)

	third, err := r.ReadEdges(1)
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestNewDirEdgeReader_EmptyDirectoryErrors(t *testing.T) {
	_, err := ingest.NewDirEdgeReader(t.TempDir())
	assert.ErrorIs(t, err, ingest.ErrEmptyDirectory)
}

func TestBuildIndexGroups_TransposesForReverse(t *testing.T) {
	edges := []core.Edge{{Src: 1, Dst: 2}, {Src: 1, Dst: 3}, {Src: 2, Dst: 3}}
	forward, reverse := ingest.BuildIndexGroups(edges, 4)

	require.Len(t, forward, 4)
	assert.Equal(t, []core.Node{2, 3}, forward[1])
	assert.Equal(t, []core.Node{3}, forward[2])
	assert.Empty(t, forward[0])
	assert.Empty(t, forward[3])

	require.Len(t, reverse, 4)
	assert.Equal(t, []core.Node{1, 2}, reverse[3])
	assert.Equal(t, []core.Node{1}, reverse[2])
}
