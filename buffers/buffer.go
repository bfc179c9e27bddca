// File: buffers/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity scratch byte storage handed out by a Cache.

package buffers

// Buffer is an owned, contiguous byte sequence of fixed capacity.
// The generation counter identifies the slot replacement that produced
// it: two gets from the same cache returned the same storage iff their
// generations match.
type Buffer struct {
	data       []byte
	generation uint64
}

// Bytes returns the full backing storage. Its length equals Cap.
func (b *Buffer) Bytes() []byte { return b.data }

// Cap reports the buffer capacity in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Generation reports the slot replacement counter this buffer was
// created under.
func (b *Buffer) Generation() uint64 { return b.generation }

// zero overwrites every byte in place. No reallocation, no identity
// change.
func (b *Buffer) zero() {
	clear(b.data)
}
