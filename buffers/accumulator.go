// File: buffers/accumulator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Growable byte sink variant of the cached scratch buffer.

package buffers

import (
	"fmt"
	"io"

	"github.com/momentics/localbuf/api"
)

// Accumulator is a growable byte sink backed by cache-managed storage.
// Reuse truncates it to empty while retaining the backing capacity;
// growth inside Write follows the same power-of-two policy as raw
// buffers. Bytes attributed to the accountant are fixed at slot
// creation: storage grown inside Write is not re-accounted until the
// cache replaces the instance through GetAccumulatorSize.
type Accumulator struct {
	buf        []byte // len = written bytes, cap = capacity
	generation uint64
}

var _ io.Writer = (*Accumulator)(nil)

// Write appends p, growing the backing storage if needed.
// Fails with api.ErrResourceExhausted when the required capacity is not
// representable; the accumulator content is unchanged in that case.
func (a *Accumulator) Write(p []byte) (int, error) {
	need := len(a.buf) + len(p)
	if need < 0 || need >= maxGrowSize {
		return 0, fmt.Errorf("%w: accumulator cannot grow to %d bytes", api.ErrResourceExhausted, need)
	}
	if need > cap(a.buf) {
		grown := make([]byte, len(a.buf), Grow(cap(a.buf), need))
		copy(grown, a.buf)
		a.buf = grown
	}
	a.buf = append(a.buf, p...)
	return len(p), nil
}

// WriteByte appends a single byte.
func (a *Accumulator) WriteByte(c byte) error {
	_, err := a.Write([]byte{c})
	return err
}

// WriteString appends s.
func (a *Accumulator) WriteString(s string) (int, error) {
	return a.Write([]byte(s))
}

// Bytes returns the accumulated content. The slice aliases the backing
// storage and is invalidated by the next Write or Reset.
func (a *Accumulator) Bytes() []byte { return a.buf }

// Len reports the number of accumulated bytes.
func (a *Accumulator) Len() int { return len(a.buf) }

// Cap reports the backing capacity in bytes.
func (a *Accumulator) Cap() int { return cap(a.buf) }

// Generation reports the slot replacement counter this accumulator was
// created under.
func (a *Accumulator) Generation() uint64 { return a.generation }

// Reset logically truncates the accumulator to empty, retaining the
// backing capacity.
func (a *Accumulator) Reset() {
	a.buf = a.buf[:0]
}

// WriteTo copies the accumulated content to w.
func (a *Accumulator) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.buf)
	return int64(n), err
}
