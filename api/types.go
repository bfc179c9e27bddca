// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Reference strength classes and the accounting/classification contracts
// that connect buffer caches to the process-wide reclamation machinery.

package api

// Strength tags a cached reference with its reclamation class.
type Strength uint8

const (
	// Strong references are never reclaimed while a slot holds them.
	Strong Strength = iota
	// Soft references survive until the reclaimer observes memory
	// pressure. Their byte size is charged to the accountant while live.
	Soft
	// Weak references may be reclaimed on any sweep. Not accounted.
	Weak
)

// String returns the lowercase class name.
func (s Strength) String() string {
	switch s {
	case Strong:
		return "strong"
	case Soft:
		return "soft"
	case Weak:
		return "weak"
	default:
		return "unknown"
	}
}

// MemoryProbe reports the total available process memory in bytes.
// A return of 0 means the platform could not be queried; consumers
// treat unknown as "no soft budget" and classify conservatively.
// Snapshots are coarse and racy; callers re-query per decision.
type MemoryProbe func() uint64

// Accountant tracks the total bytes currently committed to live
// soft-class buffers across the whole process.
type Accountant interface {
	// Register atomically adds size. Called exactly once per soft
	// buffer, at creation.
	Register(size int64)

	// Release atomically subtracts size. Invoked exactly once by the
	// reclamation pathway after a registered buffer becomes
	// unreachable from its slot.
	Release(size int64)

	// CurrentTotal is a non-blocking atomic read. It may be stale
	// relative to in-flight reclamation.
	CurrentTotal() int64
}

// Classifier decides the strength class of a buffer at creation time.
type Classifier interface {
	// Classify returns Soft or Weak for a new buffer of the given size.
	Classify(size int64) Strength
}

// CacheStats aggregates per-cache counters. Owned by the cache's worker;
// read via Cache.Stats.
type CacheStats struct {
	Gets       int64 // total get calls, buffers and accumulators
	Reuses     int64 // requests satisfied by the existing slot content
	Allocs     int64 // growth-path allocations
	SoftAllocs int64 // allocations admitted to the soft class
	WeakAllocs int64 // allocations demoted to the weak class
	ZeroFills  int64 // in-place zero fills on reuse
}

// ReclaimerStats aggregates process-wide sweep counters.
type ReclaimerStats struct {
	Sweeps        int64 // completed sweep passes
	SoftReclaimed int64 // soft refs cleared under pressure
	WeakReclaimed int64 // weak refs cleared
	Tracked       int   // refs currently in the pending set
}
