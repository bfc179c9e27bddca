// File: buffers/default.go
// Author: momentics <momentics@gmail.com>

package buffers

import "sync"

var (
	defaultOnce sync.Once
	defaultAcct *MemoryAccountant
	defaultRecl *Reclaimer
)

func initDefaults() {
	defaultOnce.Do(func() {
		defaultAcct = NewAccountant()
		defaultRecl = NewReclaimer(defaultAcct, nil, nil, DefaultSweepInterval)
	})
}

// DefaultAccountant returns the process-wide accountant so all caches
// attribute soft bytes to the same total. Initialized once, never reset.
func DefaultAccountant() *MemoryAccountant {
	initDefaults()
	return defaultAcct
}

// DefaultReclaimer returns the process-wide reclaimer paired with the
// default accountant. Its background loop is not started automatically;
// callers own Start/Stop.
func DefaultReclaimer() *Reclaimer {
	initDefaults()
	return defaultRecl
}
