// Package system reports host statistics for the performance report.
package system

import (
	"fmt"
	"math"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats is a point-in-time view of the host. Fields that could not be read
// are left at zero.
type Stats struct {
	LogicalCPUs    int
	CPUPercent     float64
	MemTotal       uint64
	MemUsedPercent float64
	GoVersion      string
}

// Snapshot reads the current host statistics. It never fails; unreadable
// counters stay zero.
func Snapshot() Stats {
	s := Stats{GoVersion: runtime.Version()}

	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	// An interval of 0 compares against the previous call, so the first
	// reading of a process may be 0.
	if c, err := cpu.Percent(0, false); err == nil && len(c) > 0 {
		s.CPUPercent = round1(c[0])
	}
	if v, err := mem.VirtualMemory(); err == nil {
		s.MemTotal = v.Total
		s.MemUsedPercent = round1(v.UsedPercent)
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("CPUs: %d | CPU: %.1f%% | Memory: %.1f%% of %d MiB | %s",
		s.LogicalCPUs, s.CPUPercent, s.MemUsedPercent, s.MemTotal>>20, s.GoVersion)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
