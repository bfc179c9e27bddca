//go:build windows
// +build windows

// File: internal/memstat/memstat_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows total-memory query via GlobalMemoryStatusEx.

package memstat

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func totalMemory() uint64 {
	var status windows.MemoryStatusEx
	status.Length = uint32(unsafe.Sizeof(status))
	if err := windows.GlobalMemoryStatusEx(&status); err != nil {
		return 0
	}
	return status.TotalPhys
}
