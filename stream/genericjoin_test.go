package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/index"
	"github.com/katalvlaran/motifjoin/stream"
)

func keyAt0(p core.Prefix) core.Node { return p[0] }

// buildRelation commits updates at time 1 into a fresh Index and
// merges them, producing a relation whose edges tier answers
// proposals and intersections.
func buildRelation(t *testing.T, edges [][2]core.Node) stream.Relation[core.Prefix] {
	t.Helper()
	ix := index.New()
	updates := make([]core.Update, len(edges))
	for i, e := range edges {
		updates[i] = core.Update{Edge: core.Edge{Src: e[0], Dst: e[1]}, Weight: 1}
	}
	ix.Update(1, updates)
	ix.MergeTo(1)
	return stream.Relation[core.Prefix]{Index: ix, Key: keyAt0, IsForward: true}
}

func TestExtend_GenericJoinWithTwoExtenders(t *testing.T) {
	// spec §8 scenario 4: extender A proposes {2,3,4} for key 1,
	// extender B proposes {3,5} for key 1; B has the smaller count and
	// wins, then A intersects the proposal down to {3}.
	a := buildRelation(t, [][2]core.Node{{1, 2}, {1, 3}, {1, 4}})
	b := buildRelation(t, [][2]core.Node{{1, 3}, {1, 5}})

	batch := []stream.Weighted[core.Prefix]{
		{Prefix: core.Prefix{1, 0}, Weight: 1},
	}

	result := stream.Extend([]stream.Relation[core.Prefix]{a, b}, batch, 2)

	require.Len(t, result, 1)
	assert.Equal(t, []core.Node{3}, result[0].Extensions)
}

func TestExtend_SingleExtenderProposesDirectly(t *testing.T) {
	a := buildRelation(t, [][2]core.Node{{1, 2}, {1, 3}})

	batch := []stream.Weighted[core.Prefix]{
		{Prefix: core.Prefix{1, 0}, Weight: 1},
	}
	result := stream.Extend([]stream.Relation[core.Prefix]{a}, batch, 2)

	require.Len(t, result, 1)
	assert.ElementsMatch(t, []core.Node{2, 3}, result[0].Extensions)
}

func TestIntersectOnly_FiltersUnmatchedPrefixes(t *testing.T) {
	a := buildRelation(t, [][2]core.Node{{1, 2}})
	probe := stream.NewProbe()
	probe.Advance(2)

	ops := []stream.IntersectOp[core.Prefix]{
		{Rel: a, Key1: func(p core.Prefix) core.Node { return p[0] }, Key2: func(p core.Prefix) core.Node { return p[1] }},
	}
	batch := []stream.Weighted[core.Prefix]{
		{Prefix: core.Prefix{1, 2}, Weight: 1},
		{Prefix: core.Prefix{1, 3}, Weight: 1},
	}

	out := stream.IntersectOnly(ops, batch, probe, 2)

	require.Len(t, out, 1)
	assert.Equal(t, core.Node(2), out[0].Prefix.Dst())
}
