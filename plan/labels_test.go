package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/plan"
	"github.com/katalvlaran/motifjoin/stream"
)

func TestCounter_Add_AccumulatesTotalAndLabeledTuples(t *testing.T) {
	labels := &plan.LabelMapping{Vertex: plan.VertexLabels{1: 10, 2: 20}}
	counter := plan.NewCounter(labels)

	counter.Add([]stream.Weighted[core.Prefix]{
		{Prefix: core.Prefix{1, 2}, Weight: 1},
		{Prefix: core.Prefix{1, 2}, Weight: 2},
	})

	assert.Equal(t, int64(3), counter.Total())
	assert.Equal(t, map[string]int64{"10,20": 3}, counter.Labeled())
}

func TestCounter_NilLabelMapping_SkipsBreakdown(t *testing.T) {
	counter := plan.NewCounter(nil)
	counter.Add([]stream.Weighted[core.Prefix]{{Prefix: core.Prefix{1, 2}, Weight: 1}})

	assert.Equal(t, int64(1), counter.Total())
	assert.Nil(t, counter.Labeled())
}
