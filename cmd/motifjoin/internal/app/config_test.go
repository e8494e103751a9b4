package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_WithoutVertexLabelFile(t *testing.T) {
	cfg, err := ParseArgs([]string{"100", "10", "1000", "plan.txt", "edges.txt"})
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 10, cfg.NumBatches)
	assert.Equal(t, 1000, cfg.BaseSize)
	assert.Equal(t, "plan.txt", cfg.PlanFile)
	assert.Empty(t, cfg.VertexLabelFile)
	assert.Equal(t, "edges.txt", cfg.Dataset)
}

func TestParseArgs_WithVertexLabelFile(t *testing.T) {
	cfg, err := ParseArgs([]string{"100", "10", "1000", "plan.txt", "labels.txt", "edges.txt"})
	require.NoError(t, err)

	assert.Equal(t, "labels.txt", cfg.VertexLabelFile)
	assert.Equal(t, "edges.txt", cfg.Dataset)
}

func TestParseArgs_NonIntegerFieldErrors(t *testing.T) {
	_, err := ParseArgs([]string{"oops", "10", "1000", "plan.txt", "edges.txt"})
	assert.Error(t, err)
}
