// Package sysmetrics takes best-effort snapshots of host CPU and memory
// usage. Metrics enrich the telemetry record when they are available; on
// platforms or environments where a reading fails, the snapshot simply
// omits the affected fields. Nothing in this package returns an error.
package sysmetrics

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot holds a point-in-time view of host resource usage. Nil fields
// mean the value could not be determined and must be left out of the
// outgoing payload, never sent as zero.
type Snapshot struct {
	// CPUUsage is the CPU utilization as a fraction between 0 and 1,
	// measured since the previous snapshot.
	CPUUsage *float64

	// MemoryUsage is the used physical memory in bytes.
	MemoryUsage *uint64

	// MemoryTotal is the total physical memory in bytes.
	MemoryTotal *uint64
}

// Collect reads current CPU and memory usage from the host. Every failure
// mode yields nil fields: an unsupported platform, a missing procfs,
// permission errors. Collect is meant to run on a background worker, not
// on the request path.
func Collect() Snapshot {
	var snap Snapshot

	// Interval 0 measures utilization against the previous call, which
	// gopsutil tracks internally. The first reading covers a longer window
	// and is less precise; that is acceptable for telemetry enrichment.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) == 1 {
		frac := percents[0] / 100
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		snap.CPUUsage = &frac
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Total > 0 {
		used := vm.Used
		total := vm.Total
		snap.MemoryUsage = &used
		snap.MemoryTotal = &total
	}

	return snap
}
