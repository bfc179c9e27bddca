// Package buffers
// Author: momentics <momentics@gmail.com>
//
// Worker-local scratch buffer caching with soft/weak reclamation.
//
// Each worker goroutine owns one Cache holding a single reclaimable byte
// buffer and a single reclaimable accumulator. Requests reuse the cached
// instance when it is large enough; otherwise a power-of-two growth policy
// sizes a replacement. New buffers are admitted to the soft class while
// the process-wide accountant stays within its budget (a fraction of
// total machine memory) and demoted to the weak class beyond it. A
// process-wide reclaimer sweeps weak references on every pass and soft
// references only under memory pressure, firing each reference's release
// hook exactly once.
//
// Caches are single-owner by design and perform no locking; only the
// accountant and the reclaimer registry are shared across workers.
// See growth.go, cache.go, reclaimer.go for implementation details.
package buffers
