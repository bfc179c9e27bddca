// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime tuning, metrics and debug introspection for the buffer cache.
//
// Provides concurrent-safe primitives:
//   - Snapshot config reads, atomic updates and reload listeners,
//     used to retune the soft budget fraction at runtime
//   - A metrics registry the facade publishes accounting and sweep
//     counters into
//   - Debug probe registration and state dump
package control
