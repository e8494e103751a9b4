package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/core"
)

func TestParseAnnouncement(t *testing.T) {
	processIndex, time, err := parseAnnouncement("2:17")
	require.NoError(t, err)
	assert.Equal(t, 2, processIndex)
	assert.Equal(t, core.Timestamp(17), time)

	_, _, err = parseAnnouncement("garbage")
	assert.Error(t, err)

	_, _, err = parseAnnouncement("x:17")
	assert.Error(t, err)
}

func TestClusterBarrier_AllAtLeastLocked(t *testing.T) {
	b := &ClusterBarrier{
		numProcesses: 2,
		frontiers:    map[int]core.Timestamp{0: 5, 1: 3},
	}

	assert.False(t, b.allAtLeastLocked(4), "process 1 is only at frontier 3")
	assert.True(t, b.allAtLeastLocked(3))

	delete(b.frontiers, 1)
	assert.False(t, b.allAtLeastLocked(0), "fewer announcements than processes is never satisfied")
}
