// File: buffers/growth.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pure capacity growth policy: power-of-two doubling from a fixed baseline.

package buffers

// BaselineCapacity is the smallest capacity any cached buffer is ever
// allocated with. Power of two.
const BaselineCapacity = 8192

// SizeCap is the hard request ceiling enforced by capped caches. Requests
// above it fail instead of growing the cached footprint further.
const SizeCap = 65536

// maxGrowSize bounds minSize so the doubling loop cannot overflow int.
const maxGrowSize = int(^uint(0)>>1)/2 + 1

// Grow maps the current capacity and a requested minimum size to the
// capacity a replacement buffer must be allocated with. Deterministic and
// side-effect free. The result is always a power of two that is >=
// BaselineCapacity, >= current and >= minSize; minSize 0 yields the
// baseline, never a zero-length buffer.
//
// minSize must have been validated by the caller (>= 0, < maxGrowSize).
func Grow(current, minSize int) int {
	c := BaselineCapacity
	for c < current {
		c <<= 1
	}
	for c < minSize {
		c <<= 1
	}
	return c
}
