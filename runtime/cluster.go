package runtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/katalvlaran/motifjoin/core"
)

// ClusterBarrier is the Cluster environment's cross-process progress
// frontier (SPEC_FULL §B): each process announces the timestamp its
// local probe has advanced to on a Redis pub/sub channel keyed by run
// ID, and WaitUntilAll blocks until every peer process has announced
// at least the requested timestamp. This is a transient coordination
// channel only — nothing here is durably stored (spec §1 non-goal),
// it exists only for the lifetime of one run.
type ClusterBarrier struct {
	client  *redis.Client
	channel string

	numProcesses int

	mu        sync.Mutex
	cond      *sync.Cond
	frontiers map[int]core.Timestamp

	cancel context.CancelFunc
	done   chan struct{}
}

// NewClusterBarrier opens a subscription on the run's coordination
// channel ("motifjoin:progress:<runID>") and starts consuming
// announcements in the background. Call Close when the run ends.
func NewClusterBarrier(ctx context.Context, client *redis.Client, runID string, numProcesses int) *ClusterBarrier {
	channel := "motifjoin:progress:" + runID
	subCtx, cancel := context.WithCancel(ctx)

	b := &ClusterBarrier{
		client:       client,
		channel:      channel,
		numProcesses: numProcesses,
		frontiers:    make(map[int]core.Timestamp, numProcesses),
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	b.cond = sync.NewCond(&b.mu)

	sub := client.Subscribe(subCtx, channel)
	go b.consume(subCtx, sub)

	return b
}

func (b *ClusterBarrier) consume(ctx context.Context, sub *redis.PubSub) {
	defer close(b.done)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			processIndex, time, err := parseAnnouncement(msg.Payload)
			if err != nil {
				continue
			}
			b.mu.Lock()
			if cur, seen := b.frontiers[processIndex]; !seen || cur < time {
				b.frontiers[processIndex] = time
			}
			b.cond.Broadcast()
			b.mu.Unlock()
		}
	}
}

func parseAnnouncement(payload string) (int, core.Timestamp, error) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("runtime: malformed announcement %q", payload)
	}
	processIndex, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("runtime: malformed process index in %q: %w", payload, err)
	}
	time, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("runtime: malformed timestamp in %q: %w", payload, err)
	}
	return processIndex, core.Timestamp(time), nil
}

// Announce publishes processIndex's local frontier advance to time.
func (b *ClusterBarrier) Announce(ctx context.Context, processIndex int, time core.Timestamp) error {
	payload := fmt.Sprintf("%d:%d", processIndex, uint64(time))
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("runtime: publishing progress: %w", err)
	}
	return nil
}

// WaitUntilAll blocks until every one of b.numProcesses peer
// processes has announced a frontier at or after time, or ctx is
// cancelled first.
func (b *ClusterBarrier) WaitUntilAll(ctx context.Context, time core.Timestamp) error {
	done := make(chan struct{})
	stopped := false
	go func() {
		b.mu.Lock()
		for !stopped && !b.allAtLeastLocked(time) {
			b.cond.Wait()
		}
		satisfied := !stopped
		b.mu.Unlock()
		if satisfied {
			close(done)
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		b.mu.Lock()
		stopped = true
		b.mu.Unlock()
		b.cond.Broadcast() // unstick the waiting goroutine above
		return ctx.Err()
	}
}

func (b *ClusterBarrier) allAtLeastLocked(time core.Timestamp) bool {
	if len(b.frontiers) < b.numProcesses {
		return false
	}
	for _, t := range b.frontiers {
		if t < time {
			return false
		}
	}
	return true
}

// Close stops the background subscription consumer and waits for it
// to exit.
func (b *ClusterBarrier) Close() {
	b.cancel()
	<-b.done
}
