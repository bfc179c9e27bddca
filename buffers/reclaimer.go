// File: buffers/reclaimer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide sweep pass standing in for the memory manager.
//
// The reclaimer tracks every soft and weak reference handed out by the
// caches. A sweep drains the pending FIFO once: references already
// dropped by their slot are discarded, weak references are reclaimed
// unconditionally, soft references are reclaimed only under pressure and
// requeued otherwise. Sweeps run on the reclaimer's own goroutine,
// unsynchronized with cache owners.

package buffers

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/momentics/localbuf/api"
	"github.com/momentics/localbuf/internal/memstat"
)

// DefaultSweepInterval is the pause between background sweep passes.
const DefaultSweepInterval = 10 * time.Second

// Reclaimer drives reclamation of tracked references.
type Reclaimer struct {
	accountant api.Accountant
	probe      api.MemoryProbe
	fraction   func() float64 // pressure threshold, shared with strategy

	mu      sync.Mutex
	pending *queue.Queue // FIFO of sweepable

	sweeps        atomic.Int64
	softReclaimed atomic.Int64
	weakReclaimed atomic.Int64

	interval   time.Duration
	stopCh     chan struct{}
	done       chan struct{}
	runMu      sync.Mutex
	running    bool
	inPressure bool
}

// NewReclaimer builds a reclaimer over the accountant and memory probe.
// fraction supplies the pressure threshold; nil uses SoftBudgetFraction.
// interval <= 0 uses DefaultSweepInterval.
func NewReclaimer(accountant api.Accountant, probe api.MemoryProbe, fraction func() float64, interval time.Duration) *Reclaimer {
	if probe == nil {
		probe = memstat.Total
	}
	if fraction == nil {
		fraction = func() float64 { return SoftBudgetFraction }
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Reclaimer{
		accountant: accountant,
		probe:      probe,
		fraction:   fraction,
		pending:    queue.New(),
		interval:   interval,
	}
}

// track registers a soft or weak reference for sweeping. Strong
// references are never tracked.
func (r *Reclaimer) track(s sweepable) {
	if s.class() == api.Strong {
		return
	}
	r.mu.Lock()
	r.pending.Add(s)
	r.mu.Unlock()
}

// UnderPressure reports whether the soft byte total exceeds the budget.
// Unknown total memory counts as pressure: with no budget to attribute
// against, soft content must not linger.
func (r *Reclaimer) UnderPressure() bool {
	total := r.probe()
	if total == 0 {
		return true
	}
	budget := int64(r.fraction() * float64(total))
	return r.accountant.CurrentTotal() > budget
}

// Sweep drains the pending set once. Weak references are reclaimed on
// every pass; soft references only when pressure is set. Returns the
// number of references reclaimed.
func (r *Reclaimer) Sweep(pressure bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	reclaimed := 0
	for n := r.pending.Length(); n > 0; n-- {
		s := r.pending.Remove().(sweepable)
		if !s.alive() {
			continue // dropped by its slot; release already fired
		}
		switch {
		case s.class() == api.Weak:
			s.reclaim()
			r.weakReclaimed.Add(1)
			reclaimed++
		case pressure:
			s.reclaim()
			r.softReclaimed.Add(1)
			reclaimed++
		default:
			r.pending.Add(s)
		}
	}
	r.sweeps.Add(1)
	return reclaimed
}

// Start launches the background sweep loop. Safe to call once.
func (r *Reclaimer) Start() error {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	if r.running {
		return api.ErrAlreadyStarted
	}
	r.stopCh = make(chan struct{})
	r.done = make(chan struct{})
	r.running = true
	go r.loop(r.stopCh, r.done)
	return nil
}

// Stop terminates the background loop and waits for it to exit.
func (r *Reclaimer) Stop() error {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	if !r.running {
		return api.ErrNotStarted
	}
	close(r.stopCh)
	<-r.done
	r.running = false
	return nil
}

func (r *Reclaimer) loop(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			pressure := r.UnderPressure()
			r.logTransition(pressure)
			r.Sweep(pressure)
		}
	}
}

// logTransition records pressure mode changes. Only the loop goroutine
// calls it, so inPressure needs no locking.
func (r *Reclaimer) logTransition(pressure bool) {
	if pressure == r.inPressure {
		return
	}
	r.inPressure = pressure
	if pressure {
		log.Printf("[reclaimer] memory pressure: sweeping soft references (soft bytes=%d)",
			r.accountant.CurrentTotal())
	} else {
		log.Printf("[reclaimer] memory pressure relieved (soft bytes=%d)",
			r.accountant.CurrentTotal())
	}
}

// Stats returns a snapshot of sweep counters.
func (r *Reclaimer) Stats() api.ReclaimerStats {
	r.mu.Lock()
	tracked := r.pending.Length()
	r.mu.Unlock()
	return api.ReclaimerStats{
		Sweeps:        r.sweeps.Load(),
		SoftReclaimed: r.softReclaimed.Load(),
		WeakReclaimed: r.weakReclaimed.Load(),
		Tracked:       tracked,
	}
}
