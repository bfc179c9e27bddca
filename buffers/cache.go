// File: buffers/cache.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker-local cache of one scratch buffer and one accumulator.

package buffers

import (
	"fmt"

	"github.com/momentics/localbuf/api"
)

// CacheConfig parameterizes a worker cache. Zero values select the
// process-wide defaults.
type CacheConfig struct {
	Accountant api.Accountant // nil: DefaultAccountant()
	Classifier api.Classifier // nil: strategy over the default accountant
	Reclaimer  *Reclaimer     // nil: DefaultReclaimer()
	Capped     bool           // enforce the SizeCap request ceiling
	HardLimit  int64          // soft-byte headroom guard on growth, 0 = unlimited
}

// slot is the single storage cell a cache owns for one kind of cached
// content. Mutated only by the owning worker.
type slot[T any] struct {
	ref        *Ref[T]
	generation uint64
}

// live returns the slot's referent if it has not been reclaimed.
func (s *slot[T]) live() (*T, bool) {
	if s.ref == nil {
		return nil, false
	}
	return s.ref.Get()
}

// capacity reports the live referent's attributed size. A reclaimed
// slot restarts growth from the baseline.
func (s *slot[T]) capacity() int {
	if _, ok := s.live(); !ok {
		return 0
	}
	return int(s.ref.Size())
}

// Cache provides reusable scratch storage for exactly one worker
// goroutine. It holds at most one reclaimable buffer reference and one
// reclaimable accumulator reference. Cache operations are synchronous,
// non-blocking, and must not be called from more than one goroutine.
//
// Aliasing rule: absent growth, repeated gets return the same instance.
// Two logically distinct in-flight uses of the same kind of buffer from
// one worker must not interleave.
type Cache struct {
	accountant api.Accountant
	classifier api.Classifier
	reclaimer  *Reclaimer
	capped     bool
	hardLimit  int64

	buf   slot[Buffer]
	acc   slot[Accumulator]
	stats api.CacheStats
}

// NewCache builds a worker cache. The returned cache shares the
// configured accountant and reclaimer with all other caches.
func NewCache(cfg CacheConfig) *Cache {
	accountant := cfg.Accountant
	if accountant == nil {
		accountant = DefaultAccountant()
	}
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = NewStrategy(accountant, nil)
	}
	reclaimer := cfg.Reclaimer
	if reclaimer == nil {
		reclaimer = DefaultReclaimer()
	}
	return &Cache{
		accountant: accountant,
		classifier: classifier,
		reclaimer:  reclaimer,
		capped:     cfg.Capped,
		hardLimit:  cfg.HardLimit,
	}
}

// GetBuffer returns the worker's scratch buffer with arbitrary content
// and at least the baseline capacity. Equivalent to GetBufferSize(0, false).
func (c *Cache) GetBuffer() (*Buffer, error) {
	return c.GetBufferSize(0, false)
}

// GetBufferSize returns the worker's scratch buffer with capacity >=
// minSize. The capacity is always a power of two >= BaselineCapacity.
// With zeroed set, the content is all zero; on reuse the fill happens in
// place without changing identity. Absent growth, the same Buffer
// instance is returned on every call.
func (c *Cache) GetBufferSize(minSize int, zeroed bool) (*Buffer, error) {
	if err := c.checkSize(minSize); err != nil {
		return nil, err
	}
	c.stats.Gets++

	if cur, ok := c.buf.live(); ok && cur.Cap() >= minSize {
		c.stats.Reuses++
		if zeroed {
			cur.zero()
			c.stats.ZeroFills++
		}
		return cur, nil
	}

	capacity, err := c.growth(c.buf.capacity(), minSize)
	if err != nil {
		return nil, err
	}
	buf := &Buffer{
		data:       make([]byte, capacity),
		generation: c.buf.generation + 1,
	}
	replaceSlot(c, &c.buf, buf, capacity)
	return buf, nil
}

// GetAccumulator returns the worker's accumulator, truncated to empty.
// Equivalent to GetAccumulatorSize(0).
func (c *Cache) GetAccumulator() (*Accumulator, error) {
	return c.GetAccumulatorSize(0)
}

// GetAccumulatorSize returns the worker's accumulator with backing
// capacity >= minSize, truncated to empty. Reuse retains the backing
// capacity; growth replaces the instance.
func (c *Cache) GetAccumulatorSize(minSize int) (*Accumulator, error) {
	if err := c.checkSize(minSize); err != nil {
		return nil, err
	}
	c.stats.Gets++

	if cur, ok := c.acc.live(); ok && cur.Cap() >= minSize {
		c.stats.Reuses++
		cur.Reset()
		return cur, nil
	}

	capacity, err := c.growth(c.acc.capacity(), minSize)
	if err != nil {
		return nil, err
	}
	acc := &Accumulator{
		buf:        make([]byte, 0, capacity),
		generation: c.acc.generation + 1,
	}
	replaceSlot(c, &c.acc, acc, capacity)
	return acc, nil
}

// Stats returns a copy of the cache counters. Meaningful only when read
// from the owning worker.
func (c *Cache) Stats() api.CacheStats {
	return c.stats
}

// checkSize validates minSize before any mutation.
func (c *Cache) checkSize(minSize int) error {
	if minSize < 0 {
		return fmt.Errorf("%w: minSize must not be negative, got %d", api.ErrInvalidArgument, minSize)
	}
	if c.capped && minSize > SizeCap {
		return fmt.Errorf("%w: minSize %d exceeds cap %d", api.ErrInvalidArgument, minSize, SizeCap)
	}
	return nil
}

// growth computes the replacement capacity and applies the resource
// guards. The hard limit charges the requested capacity against the
// accountant's soft-byte total; live weak-class bytes are not counted.
// The slot is not touched on failure.
func (c *Cache) growth(current, minSize int) (int, error) {
	if minSize >= maxGrowSize {
		return 0, api.NewError(api.ErrCodeResourceExhausted, "no representable capacity").
			WithContext("min_size", minSize)
	}
	capacity := Grow(current, minSize)
	if c.hardLimit > 0 && c.accountant.CurrentTotal()+int64(capacity) > c.hardLimit {
		return 0, api.NewError(api.ErrCodeResourceExhausted, "growth exceeds hard limit").
			WithContext("capacity", capacity).
			WithContext("hard_limit", c.hardLimit)
	}
	return capacity, nil
}

// replaceSlot installs a new referent: classify once at creation,
// register soft bytes, track for sweeping, then drop the previous
// reference so its release hook fires — the old referent is no longer
// reachable from the slot.
func replaceSlot[T any](c *Cache, s *slot[T], v *T, capacity int) {
	size := int64(capacity)
	strength := c.classifier.Classify(size)

	var hook func(int64)
	if strength == api.Soft {
		c.accountant.Register(size)
		hook = c.accountant.Release
	}
	ref := newRef(v, strength, size, hook)

	old := s.ref
	s.ref = ref
	s.generation++
	if old != nil {
		old.drop()
	}
	c.reclaimer.track(ref)

	c.stats.Allocs++
	switch strength {
	case api.Soft:
		c.stats.SoftAllocs++
	case api.Weak:
		c.stats.WeakAllocs++
	}
}
