package runtime_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/motifjoin/runtime"
)

func TestScheduler_RunsOneGoroutinePerWorker(t *testing.T) {
	s := runtime.NewScheduler(runtime.NewProcess(4))

	var seen atomic.Int32
	err := s.Run(context.Background(), func(_ context.Context, workerID int) error {
		seen.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 4, seen.Load())
}

func TestScheduler_PropagatesWorkerError(t *testing.T) {
	s := runtime.NewScheduler(runtime.NewProcess(3))

	err := s.Run(context.Background(), func(_ context.Context, workerID int) error {
		if workerID == 1 {
			return fmt.Errorf("boom")
		}
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker 1")
}

func TestScheduler_CancelsPeersOnError(t *testing.T) {
	s := runtime.NewScheduler(runtime.NewProcess(2))

	err := s.Run(context.Background(), func(ctx context.Context, workerID int) error {
		if workerID == 0 {
			return fmt.Errorf("fail fast")
		}
		<-ctx.Done()
		return ctx.Err()
	})

	require.Error(t, err)
}
