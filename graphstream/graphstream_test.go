package graphstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/graphstream"
	"github.com/katalvlaran/motifjoin/index"
)

func TestGraphStreamIndex_ForwardAndReverseStayConsistent(t *testing.T) {
	gsi, handle := graphstream.New()

	gsi.Update(1, []core.Update{
		{Edge: core.Edge{Src: 1, Dst: 2}, Weight: 1},
		{Edge: core.Edge{Src: 1, Dst: 3}, Weight: 1},
	})
	handle.MergeTo(1)

	// forward is keyed by src: key 1 holds 2 and 3.
	forward := []index.CountEntry[core.Prefix]{{Prefix: core.Prefix{1, 0}, Count: ^uint64(0)}}
	gsi.Forward.Count(forward, 2, 0)
	assert.Equal(t, uint64(2), forward[0].Count)

	// reverse is keyed by dst: keys 2 and 3 each hold 1.
	reverse := []index.CountEntry[core.Prefix]{
		{Prefix: core.Prefix{0, 2}, Count: ^uint64(0)},
		{Prefix: core.Prefix{0, 3}, Count: ^uint64(0)},
	}
	gsi.Reverse.Count(reverse, 2, 0)
	assert.Equal(t, uint64(1), reverse[0].Count)
	assert.Equal(t, uint64(1), reverse[1].Count)

	prefixes := graphstream.RootPrefixes([]core.Update{
		{Edge: core.Edge{Src: 1, Dst: 2}, Weight: 1},
	})
	require.Len(t, prefixes, 1)
	assert.Equal(t, core.Node(1), prefixes[0].Prefix.Src())
	assert.Equal(t, core.Node(2), prefixes[0].Prefix.Dst())
}
