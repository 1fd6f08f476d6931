// Package metrics defines the host telemetry snapshot model and the
// gopsutil-backed collector that produces one snapshot per refresh cycle.
//
// Optional readings use pointer (or nil-slice) fields: a nil field means the
// metric was unavailable this cycle — sensor missing, permission denied, or
// platform unsupported. Absence is first-class state, not a swallowed error.
package metrics

import "time"

// Snapshot is a point-in-time reading of host telemetry, produced once per
// refresh cycle and immutable afterwards.
type Snapshot struct {
	Timestamp time.Time

	CPU       *CPUStats
	Memory    *MemoryStats
	Disks     []DiskStats
	Network   *NetworkStats
	GPUs      []GPUStats
	Battery   *BatteryStats
	Processes []ProcessStats
	System    *SystemInfo
}

// CPUStats aggregates instantaneous CPU usage.
type CPUStats struct {
	Usage         float64   // percent, clamped to [0,100] on ingest
	PerCore       []float64 // per logical core, percent
	CountLogical  int
	CountPhysical int

	Freq        *CPUFreq // nil when the platform exposes no frequency info
	Temperature *float64 // °C, nil when no sensor is readable
	Load        *LoadAvg // nil on platforms without load averages
}

// CPUFreq holds current/min/max core frequency in MHz.
type CPUFreq struct {
	Current float64
	Min     float64
	Max     float64
}

// LoadAvg holds the 1/5/15-minute load averages.
type LoadAvg struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// MemoryStats captures RAM and swap usage.
type MemoryStats struct {
	Total     uint64
	Used      uint64
	Available uint64
	Percent   float64

	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64
}

// DiskStats describes one mounted filesystem.
type DiskStats struct {
	Device     string
	Mountpoint string
	Fstype     string
	Total      uint64
	Used       uint64
	Percent    float64
}

// NetworkStats carries derived rates plus cumulative counters.
type NetworkStats struct {
	UploadRate   float64 // bytes/sec, derived from counter deltas
	DownloadRate float64 // bytes/sec
	TotalSent    uint64
	TotalRecv    uint64
	Interfaces   []Interface
}

// Interface is a single network interface with its up/down flag.
type Interface struct {
	Name string
	Up   bool
}

// GPUStats holds a single device reading.
type GPUStats struct {
	Name        string
	Load        float64 // percent
	MemoryUsed  float64 // MiB
	MemoryTotal float64 // MiB
	Temperature float64 // °C
}

// BatteryStats shows power state.
type BatteryStats struct {
	Percent float64
	Plugged bool

	// SecondsLeft is the estimated runtime; negative means unknown.
	SecondsLeft int64
}

// ProcessStats is one row of the process table, unsorted at capture time.
type ProcessStats struct {
	PID           int32
	Name          string
	CPUPercent    float64
	MemoryPercent float64
	RSS           uint64 // resident set size, bytes
}

// SystemInfo contains mostly-static host information.
type SystemInfo struct {
	Hostname string
	OS       string
	Platform string
	Kernel   string
	Arch     string
	BootTime time.Time
	Uptime   time.Duration
}

// MemoryPercentOf guards the used/total division against a zero total.
func MemoryPercentOf(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

// ClampPercent clamps a percentage into [0,100]. Multi-core aggregation can
// momentarily report slightly over 100.
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
