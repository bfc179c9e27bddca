//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

// File: internal/memstat/memstat_stub.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms without a supported memory query: report unknown.

package memstat

func totalMemory() uint64 { return 0 }
