// File: buffers/accountant.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide atomic accounting of live soft-class buffer bytes.

package buffers

import (
	"sync/atomic"

	"github.com/momentics/localbuf/api"
)

// MemoryAccountant is a single shared non-negative counter of bytes
// currently attributed to live soft-class buffers across all workers.
// All operations are atomic and non-blocking. Reads are eventually
// consistent with respect to in-flight reclamation.
//
// Double release is made structurally impossible upstream: each
// reference's release hook fires at most once by construction, so the
// counter never goes negative at a quiescent point.
type MemoryAccountant struct {
	total atomic.Int64
}

var _ api.Accountant = (*MemoryAccountant)(nil)

// NewAccountant returns a zeroed accountant.
func NewAccountant() *MemoryAccountant {
	return &MemoryAccountant{}
}

// Register atomically adds size. Called exactly once per soft buffer at
// creation.
func (a *MemoryAccountant) Register(size int64) {
	a.total.Add(size)
}

// Release atomically subtracts size. Invoked exactly once per
// registered buffer by its release hook.
func (a *MemoryAccountant) Release(size int64) {
	a.total.Add(-size)
}

// CurrentTotal returns the current attributed byte total.
func (a *MemoryAccountant) CurrentTotal() int64 {
	return a.total.Load()
}
