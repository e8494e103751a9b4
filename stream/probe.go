package stream

import (
	"sync"

	"github.com/katalvlaran/motifjoin/core"
)

// Probe tracks the frontier of in-flight batch timestamps shared by a
// plan's operators, grounded on
// original_source/src/wings_rule/intersector.rs's use of
// timely::dataflow::operators::probe::Handle. IntersectOnly defers
// processing a batch until the frontier has been advanced to at least
// that batch's time — the signal that no further update at or before
// it can still arrive.
type Probe struct {
	mu       sync.Mutex
	cond     *sync.Cond
	frontier core.Timestamp
	started  bool
}

// NewProbe allocates a Probe with no frontier yet established.
func NewProbe() *Probe {
	p := &Probe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Advance records that time is now fully committed: every timestamp
// at or before it is final, and no further update will ever be dated
// at or before it. Goroutines blocked in WaitSafe are woken to
// re-check their condition.
func (p *Probe) Advance(time core.Timestamp) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started || p.frontier < time {
		p.frontier = time
		p.started = true
		p.cond.Broadcast()
	}
}

// WaitSafe blocks until IsSafe(time) holds. Used by IntersectOnly to
// defer processing a buffered batch the way intersector.rs's unary
// operator re-polls `handle.less_equal` each time the probe's input
// advances, rather than processing eagerly and risking a stale
// validation against an index that has not yet merged every diff
// dated at or before time.
func (p *Probe) WaitSafe(time core.Timestamp) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !(p.started && time <= p.frontier) {
		p.cond.Wait()
	}
}

// IsSafe reports whether time is at or behind the frontier — the
// Go-idiomatic inverse of ProbeHandle::less_equal: a buffered batch at
// time is safe to process once IsSafe(time) is true.
func (p *Probe) IsSafe(time core.Timestamp) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && time <= p.frontier
}
