// Package system reports host process statistics for verbose runs.
package system

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/neonkore/OZZAnimC/internal/logger"
)

// LogProcessStats emits the converter process resident memory at debug
// level. Failures to sample are ignored: statistics are informational
// and must never fail a run.
func LogProcessStats(log logger.Logger) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}
	mem, err := p.MemoryInfo()
	if err != nil || mem == nil {
		return
	}
	log.Debug("process statistics", "rss_mib", float64(mem.RSS)/(1<<20))
}
