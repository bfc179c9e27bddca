//go:build linux
// +build linux

// File: internal/memstat/memstat_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux total-memory query via sysinfo(2).

package memstat

import "golang.org/x/sys/unix"

func totalMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	// Totalram is reported in units of info.Unit bytes.
	return uint64(info.Totalram) * uint64(info.Unit)
}
