package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/motifjoin/runtime"
)

func TestEnvironment_NumWorkers(t *testing.T) {
	assert.Equal(t, 1, runtime.NewThread().NumWorkers())
	assert.Equal(t, 4, runtime.NewProcess(4).NumWorkers())
	assert.Equal(t, 3, runtime.NewCluster(3, 1, 2).NumWorkers())
	assert.Equal(t, 1, runtime.NewProcess(0).NumWorkers(), "non-positive threads falls back to 1")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "thread", runtime.Thread.String())
	assert.Equal(t, "process", runtime.Process.String())
	assert.Equal(t, "cluster", runtime.Cluster.String())
}
