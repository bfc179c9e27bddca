// File: fake/accountant.go
// Author: momentics <momentics@gmail.com>
//
// Test doubles for the accounting and memory-probe contracts.

package fake

import (
	"sync/atomic"

	"github.com/momentics/localbuf/api"
)

// FixedProbe returns a memory probe reporting a constant machine total.
func FixedProbe(total uint64) api.MemoryProbe {
	return func() uint64 { return total }
}

// CountingAccountant records every register and release call alongside
// the running total, for exactly-once assertions.
type CountingAccountant struct {
	total     atomic.Int64
	Registers atomic.Int64
	Releases  atomic.Int64
}

var _ api.Accountant = (*CountingAccountant)(nil)

// Register adds size and counts the call.
func (a *CountingAccountant) Register(size int64) {
	a.Registers.Add(1)
	a.total.Add(size)
}

// Release subtracts size and counts the call.
func (a *CountingAccountant) Release(size int64) {
	a.Releases.Add(1)
	a.total.Add(-size)
}

// CurrentTotal returns the running total.
func (a *CountingAccountant) CurrentTotal() int64 {
	return a.total.Load()
}

// FixedClassifier always returns the configured strength.
type FixedClassifier struct {
	Strength api.Strength
}

var _ api.Classifier = (*FixedClassifier)(nil)

// Classify ignores size and returns the configured strength.
func (c *FixedClassifier) Classify(int64) api.Strength {
	return c.Strength
}
