// File: buffers/reclaimable.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Strength-tagged references with an exactly-once release hook.
//
// Go has no soft or weak references, so reclamation is explicit: the
// reclaimer clears a reference's referent and the owning slot detects
// the loss lazily on its next get. A reference cleared by the sweeper
// does not invalidate storage the worker already holds; it only makes
// the cache forget it, leaving the bytes to the garbage collector once
// the worker drops them.

package buffers

import (
	"sync/atomic"

	"github.com/momentics/localbuf/api"
)

// Ref holds one reclaimable referent with its strength class, its
// attributed byte size, and a release hook that fires exactly once —
// either when the slot replaces the reference or when the reclaimer
// sweeps it, whichever happens first.
type Ref[T any] struct {
	referent  atomic.Pointer[T]
	strength  api.Strength
	size      int64
	released  atomic.Bool
	onRelease func(size int64)
}

// sweepable is the type-erased view the reclaimer operates on.
type sweepable interface {
	alive() bool
	class() api.Strength
	reclaim()
}

func newRef[T any](v *T, strength api.Strength, size int64, onRelease func(int64)) *Ref[T] {
	r := &Ref[T]{
		strength:  strength,
		size:      size,
		onRelease: onRelease,
	}
	r.referent.Store(v)
	return r
}

// Get returns the referent, or false if it has been reclaimed.
func (r *Ref[T]) Get() (*T, bool) {
	v := r.referent.Load()
	return v, v != nil
}

// Size reports the byte size attributed to the referent.
func (r *Ref[T]) Size() int64 { return r.size }

func (r *Ref[T]) alive() bool {
	return r.referent.Load() != nil
}

func (r *Ref[T]) class() api.Strength { return r.strength }

// reclaim clears the referent and fires the release hook. Called by the
// reclaimer; racing with a concurrent drop is resolved by the
// exactly-once gate in fire.
func (r *Ref[T]) reclaim() {
	r.referent.Store(nil)
	r.fire()
}

// drop marks the reference as replaced by its slot. The referent is no
// longer reachable from the slot, so the release hook fires.
func (r *Ref[T]) drop() {
	r.referent.Store(nil)
	r.fire()
}

func (r *Ref[T]) fire() {
	if r.released.CompareAndSwap(false, true) && r.onRelease != nil {
		r.onRelease(r.size)
	}
}
