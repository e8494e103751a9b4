package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/runtime"
	"github.com/katalvlaran/motifjoin/stream"
)

func TestResolveEnvironment(t *testing.T) {
	env, err := resolveEnvironment(&Config{Runtime: "thread"})
	require.NoError(t, err)
	assert.Equal(t, runtime.Thread, env.Kind)

	env, err = resolveEnvironment(&Config{Runtime: "process", Threads: 4})
	require.NoError(t, err)
	assert.Equal(t, runtime.Process, env.Kind)
	assert.Equal(t, 4, env.NumWorkers())

	env, err = resolveEnvironment(&Config{Runtime: "cluster", Threads: 2, ProcessIndex: 1, NumProcesses: 3})
	require.NoError(t, err)
	assert.Equal(t, runtime.Cluster, env.Kind)
	assert.Equal(t, 1, env.ProcessIndex)
	assert.Equal(t, 3, env.NumProcesses)

	_, err = resolveEnvironment(&Config{Runtime: "bogus"})
	assert.Error(t, err)
}

func TestMaxVertex(t *testing.T) {
	edges := []core.Edge{{Src: 1, Dst: 5}, {Src: 3, Dst: 2}}
	assert.Equal(t, core.Node(5), maxVertex(edges))
}

func TestPartitionRoots_GroupsBySourceModulo(t *testing.T) {
	roots := []stream.Weighted[core.Prefix]{
		{Prefix: core.Prefix{0, 1}, Weight: 1},
		{Prefix: core.Prefix{1, 2}, Weight: 1},
		{Prefix: core.Prefix{2, 3}, Weight: 1},
		{Prefix: core.Prefix{3, 4}, Weight: 1},
	}

	partitions := partitionRoots(roots, 2)
	require.Len(t, partitions, 2)
	assert.Len(t, partitions[0], 2) // src 0, 2
	assert.Len(t, partitions[1], 2) // src 1, 3
}

func TestOwnProcessRoots_FiltersBySourceModuloProcesses(t *testing.T) {
	roots := []stream.Weighted[core.Prefix]{
		{Prefix: core.Prefix{0, 1}, Weight: 1},
		{Prefix: core.Prefix{1, 2}, Weight: 1},
		{Prefix: core.Prefix{2, 3}, Weight: 1},
	}

	mine := ownProcessRoots(roots, 1, 3)
	require.Len(t, mine, 1)
	assert.Equal(t, core.Node(1), mine[0].Prefix.Src())

	assert.Equal(t, roots, ownProcessRoots(roots, 0, 1))
}
