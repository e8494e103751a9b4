package plan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/plan"
)

func triangleFixture() *plan.Plan {
	p := &plan.Plan{
		RootNodeID: 0,
		Nodes: []plan.PlanNode{
			{EdgeStartIdx: 0, NumEdges: 1, SubgraphNumVertices: 2, IsQuery: false},
			{EdgeStartIdx: 1, NumEdges: 0, SubgraphNumVertices: 3, IsQuery: true},
		},
		Edges: []plan.PlanEdge{
			{
				Src: 0,
				Dst: 1,
				Operations: []plan.PlanOperation{
					{SrcKey: 1, DstKey: 2, IsForward: true},
					{SrcKey: 0, DstKey: 2, IsForward: false},
				},
			},
		},
	}
	p.Initialize()
	return p
}

func TestPlan_InitializeSplitsExtensionsFromIntersections(t *testing.T) {
	p := triangleFixture()

	// Both operations on the triangle-closing edge bind the newly
	// appearing attribute (position 2), so both are extensions and
	// there are no intersections.
	require.Len(t, p.Edges[0].Operations, 2)
	assert.Equal(t, 2, p.Edges[0].NumExtensions())
	assert.Equal(t, 0, p.Edges[0].NumIntersections())
	assert.Equal(t, []int{0}, p.OutgoingEdges(0))
}

func TestPlan_WriteReadRoundTrip(t *testing.T) {
	original := triangleFixture()

	path := filepath.Join(t.TempDir(), "triangle.plan")
	require.NoError(t, plan.WritePlan(path, original))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := plan.ReadPlan(path)
	require.NoError(t, err)

	assert.Equal(t, original.RootNodeID, loaded.RootNodeID)
	require.Len(t, loaded.Nodes, len(original.Nodes))
	require.Len(t, loaded.Edges, len(original.Edges))
	assert.Equal(t, original.Nodes[1].SubgraphNumVertices, loaded.Nodes[1].SubgraphNumVertices)
	assert.Equal(t, original.Edges[0].Operations, loaded.Edges[0].Operations)
}

func TestReadPlan_TruncatedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.plan")
	require.NoError(t, os.WriteFile(path, []byte("# header\n0\n1\n"), 0o644))

	_, err := plan.ReadPlan(path)
	require.Error(t, err)
}

func TestReadPlan_RootNodeShorterThanRootEdgeIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short_root.plan")
	// root node 0 has SubgraphNumVertices 1: too short to hold a root
	// edge's two positions.
	content := "# header\n0\n1\n0 0 1 0\n0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := plan.ReadPlan(path)
	require.ErrorIs(t, err, core.ErrEmptyPrefix)
}
