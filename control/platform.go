// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes: CPU count and the memory total the admission
// strategy budgets against.

package control

import (
	"runtime"

	"github.com/momentics/localbuf/internal/memstat"
)

// RegisterPlatformProbes sets platform-level debug metrics.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.total_memory", func() any {
		return memstat.Total()
	})
}
