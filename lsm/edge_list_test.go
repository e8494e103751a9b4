package lsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/lsm"
)

func TestEdgeList_SealFromBoundaryGeometry(t *testing.T) {
	// spec §8 scenario 2.
	el := lsm.New[int]()

	el.Push(1, 1)
	el.Push(2, 1)
	el.Push(3, 1)
	el.Push(4, 1)
	el.SealFrom(0)

	el.Push(5, 1)
	el.SealFrom(4)

	assert.Equal(t, core.Weight(5), el.Count())

	el.Push(6, 1)
	el.Push(7, 1)
	el.Push(8, 1)
	el.SealFrom(5)

	// the new run (len 3) is not < half of the prior run (len 1), so the
	// tail gets merged via consolidateTail regardless of whether the
	// remaining lone boundary is dropped; Proposals forces full
	// consolidation either way.
	props := el.Proposals()
	require.Len(t, props, 8)
	for i := 0; i < len(props)-1; i++ {
		assert.Less(t, props[i].Value, props[i+1].Value)
	}
	assert.Equal(t, core.Weight(8), el.Count())
}

func TestEdgeList_ProposalsConsolidatesAndStripsZeroWeights(t *testing.T) {
	el := lsm.New[int]()

	pos := el.Position()
	el.Push(2, 1)
	el.Push(2, -1) // cancels
	el.Push(3, 1)
	el.SealFrom(pos)

	props := el.Proposals()
	require.Len(t, props, 1)
	assert.Equal(t, 3, props[0].Value)
	assert.Equal(t, core.Weight(1), el.Count())
}

func TestEdgeList_Intersect(t *testing.T) {
	el := lsm.New[int]()
	pos := el.Position()
	el.Push(2, 1)
	el.Push(3, 1)
	el.Push(4, -1)
	el.SealFrom(pos)

	values := []int{2, 3, 4, 5}
	temp := make([]core.Weight, len(values))
	el.Intersect(values, temp)

	assert.Equal(t, []core.Weight{1, 1, -1, 0}, temp)
}

func TestEdgeList_SealFrom_DeferredBoundaryRunIsSelfConsolidated(t *testing.T) {
	el := lsm.New[int]()

	el.Push(1, 1)
	el.Push(2, 1)
	el.Push(3, 1)
	el.Push(4, 1)
	el.Push(5, 1)
	el.Push(6, 1)
	el.Push(7, 1)
	el.Push(8, 1)
	el.SealFrom(0) // one run of 8, no boundary recorded

	pos := el.Position()
	el.Push(9, 1)
	el.Push(9, 1) // duplicate value pushed within the same deferred run
	el.SealFrom(pos) // new run (len 2) < half of prior run (len 8): boundary kept

	values := []int{9}
	temp := make([]core.Weight, len(values))
	el.Intersect(values, temp)

	// the deferred run must be sorted and deduplicated on its own even
	// though it isn't merged with the older run: both weight-1 pushes
	// for 9 must land in the same Record, or Intersect's galloping scan
	// (which advances past a matched value once) silently drops the
	// second one.
	assert.Equal(t, []core.Weight{2}, temp)
}

func TestEdgeList_ExpendConsolidatesWhenEffortExceedsSize(t *testing.T) {
	el := lsm.New[int]()

	el.Push(1, 1)
	el.Push(2, 1)
	el.Push(3, 1)
	el.Push(4, 1)
	el.SealFrom(0) // one run, no boundary recorded

	pos := el.Position()
	el.Push(5, 1)
	el.SealFrom(pos) // new run (len 1) < half of prior run (len 4): boundary kept

	el.Expend(1000) // effort far exceeds len(values): forces full consolidation

	props := el.Proposals()
	require.Len(t, props, 5)
	for i, want := range []int{1, 2, 3, 4, 5} {
		assert.Equal(t, want, props[i].Value)
	}
}
