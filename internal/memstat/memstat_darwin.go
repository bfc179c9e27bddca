//go:build darwin
// +build darwin

// File: internal/memstat/memstat_darwin.go
// Author: momentics <momentics@gmail.com>
//
// Darwin total-memory query via the hw.memsize sysctl.

package memstat

import "golang.org/x/sys/unix"

func totalMemory() uint64 {
	size, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0
	}
	return size
}
