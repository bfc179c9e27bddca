// File: internal/memstat/memstat.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform query of total addressable process memory.
// Platform-specific implementations reside in memstat_linux.go,
// memstat_darwin.go and memstat_windows.go.

package memstat

// Total queries the operating system for the machine's physical memory.
// The result is a coarse, racy snapshot; callers re-query per decision.
func Total() uint64 {
	return totalMemory()
}
