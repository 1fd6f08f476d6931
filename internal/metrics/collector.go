package metrics

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/veroxsity/sysmon/internal/errors"
	"github.com/veroxsity/sysmon/internal/logger"
)

// cpuSensorHints match the sensor keys that correspond to the CPU package
// across common platforms.
var cpuSensorHints = []string{"coretemp", "k10temp", "cpu_thermal", "package", "tdie", "soc"}

// Collector produces telemetry snapshots. Each metric is read best-effort:
// an unreadable source leaves its snapshot field nil and the rest of the
// snapshot intact. Collect fails only when neither CPU nor memory can be
// read, which makes the whole cycle useless.
//
// Not safe for concurrent use; one refresh loop owns a Collector.
type Collector struct {
	log   logger.Logger
	rates *RateTracker

	prevCPU     []cpu.TimesStat
	prevPerCore []cpu.TimesStat
	lastSample  time.Time
}

// NewCollector returns a Collector logging through log.
func NewCollector(log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		log:   log,
		rates: NewRateTracker(),
	}
}

// Collect gathers one snapshot. The context bounds the slower reads
// (process table, sensors, external GPU query).
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	now := time.Now()
	elapsed := 0.0
	if !c.lastSample.IsZero() {
		elapsed = now.Sub(c.lastSample).Seconds()
	}
	c.lastSample = now

	snap := &Snapshot{Timestamp: now}

	snap.CPU = c.collectCPU(ctx)
	snap.Memory = c.collectMemory(ctx)
	snap.Disks = c.collectDisks(ctx)
	snap.Network = c.collectNetwork(ctx, elapsed)
	snap.GPUs = c.collectGPUs(ctx)
	snap.Battery = c.collectBattery()
	snap.Processes = c.collectProcesses(ctx)
	snap.System = c.collectSystem(ctx)

	if snap.CPU == nil && snap.Memory == nil {
		return nil, errors.New(errors.ErrCollect,
			"Unable to read CPU or memory statistics",
			"Check that /proc is mounted and readable")
	}
	return snap, nil
}

// collectCPU derives usage from times deltas so it never sleeps inside the
// refresh loop. The first cycle has no baseline and reports zero usage.
func (c *Collector) collectCPU(ctx context.Context) *CPUStats {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil || len(times) == 0 {
		c.log.Debug("cpu times unavailable: %v", err)
		return nil
	}

	stats := &CPUStats{}
	if len(c.prevCPU) > 0 {
		stats.Usage = ClampPercent(busyPercent(c.prevCPU[0], times[0]))
	}
	c.prevCPU = times

	if coreTimes, err := cpu.TimesWithContext(ctx, true); err == nil {
		perCore := make([]float64, len(coreTimes))
		for i, cur := range coreTimes {
			if i < len(c.prevPerCore) {
				perCore[i] = ClampPercent(busyPercent(c.prevPerCore[i], cur))
			}
		}
		c.prevPerCore = coreTimes
		stats.PerCore = perCore
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CountLogical = n
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		stats.CountPhysical = n
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 && infos[0].Mhz > 0 {
		stats.Freq = &CPUFreq{Current: infos[0].Mhz}
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		stats.Load = &LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}

	stats.Temperature = c.cpuTemperature(ctx)
	return stats
}

func busyPercent(prev, cur cpu.TimesStat) float64 {
	dt := cur.Total() - prev.Total()
	if dt <= 0 {
		return 0
	}
	di := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	return 100 * (1 - di/dt)
}

// cpuTemperature picks the hottest sensor whose key looks CPU-related.
// Many hosts expose no sensors at all; that is not an error.
func (c *Collector) cpuTemperature(ctx context.Context) *float64 {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil || len(temps) == 0 {
		return nil
	}

	var best float64
	found := false
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		key := strings.ToLower(t.SensorKey)
		for _, hint := range cpuSensorHints {
			if strings.Contains(key, hint) {
				if !found || t.Temperature > best {
					best = t.Temperature
					found = true
				}
				break
			}
		}
	}
	if !found {
		return nil
	}
	return &best
}

func (c *Collector) collectMemory(ctx context.Context) *MemoryStats {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		c.log.Debug("memory unavailable: %v", err)
		return nil
	}

	stats := &MemoryStats{
		Total:     vm.Total,
		Used:      vm.Used,
		Available: vm.Available,
		Percent:   ClampPercent(vm.UsedPercent),
	}
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		stats.SwapTotal = swap.Total
		stats.SwapUsed = swap.Used
		stats.SwapPercent = ClampPercent(swap.UsedPercent)
	}
	return stats
}

// collectDisks reports usage per physical partition, deduplicated by device
// so bind mounts do not repeat.
func (c *Collector) collectDisks(ctx context.Context) []DiskStats {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		c.log.Debug("disk partitions unavailable: %v", err)
		return nil
	}

	seen := make(map[string]bool, len(parts))
	var out []DiskStats
	for _, p := range parts {
		if seen[p.Device] {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		seen[p.Device] = true
		out = append(out, DiskStats{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			Total:      usage.Total,
			Used:       usage.Used,
			Percent:    ClampPercent(usage.UsedPercent),
		})
	}
	return out
}

func (c *Collector) collectNetwork(ctx context.Context, elapsed float64) *NetworkStats {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		c.log.Debug("network counters unavailable: %v", err)
		return nil
	}

	total := counters[0]
	up, down := c.rates.Update(total.BytesSent, total.BytesRecv, elapsed)
	stats := &NetworkStats{
		UploadRate:   up,
		DownloadRate: down,
		TotalSent:    total.BytesSent,
		TotalRecv:    total.BytesRecv,
	}

	if ifaces, err := net.InterfacesWithContext(ctx); err == nil {
		for _, ifc := range ifaces {
			if ifc.Name == "lo" {
				continue
			}
			up := false
			for _, flag := range ifc.Flags {
				if flag == "up" {
					up = true
					break
				}
			}
			stats.Interfaces = append(stats.Interfaces, Interface{Name: ifc.Name, Up: up})
		}
	}
	return stats
}

// collectGPUs shells out to nvidia-smi. No binary, no GPUs.
func (c *Collector) collectGPUs(ctx context.Context) []GPUStats {
	qctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(qctx, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,memory.used,memory.total,temperature.gpu",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		return nil
	}

	var gpus []GPUStats
	for _, line := range strings.Split(string(out), "\n") {
		parts := strings.Split(line, ",")
		if len(parts) < 5 {
			continue
		}
		gpus = append(gpus, GPUStats{
			Name:        strings.TrimSpace(parts[0]),
			Load:        parseFloat(parts[1]),
			MemoryUsed:  parseFloat(parts[2]),
			MemoryTotal: parseFloat(parts[3]),
			Temperature: parseFloat(parts[4]),
		})
	}
	return gpus
}

// collectBattery reads the power_supply sysfs tree. Desktops and non-Linux
// hosts simply have no battery to report.
func (c *Collector) collectBattery() *BatteryStats {
	capPaths, _ := filepath.Glob("/sys/class/power_supply/BAT*/capacity")
	for _, capPath := range capPaths {
		raw, err := os.ReadFile(capPath)
		if err != nil {
			continue
		}
		base := filepath.Dir(capPath)
		status, _ := os.ReadFile(filepath.Join(base, "status"))
		state := strings.TrimSpace(string(status))

		return &BatteryStats{
			Percent:     ClampPercent(parseFloat(string(raw))),
			Plugged:     state == "Charging" || state == "Full" || state == "Not charging",
			SecondsLeft: -1,
		}
	}
	return nil
}

func (c *Collector) collectProcesses(ctx context.Context) []ProcessStats {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		c.log.Debug("process list unavailable: %v", err)
		return nil
	}

	out := make([]ProcessStats, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			// kernel threads and already-exited pids
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)

		stat := ProcessStats{
			PID:           p.Pid,
			Name:          name,
			CPUPercent:    cpuPct,
			MemoryPercent: float64(memPct),
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			stat.RSS = mi.RSS
		}
		out = append(out, stat)
	}
	return out
}

func (c *Collector) collectSystem(ctx context.Context) *SystemInfo {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		c.log.Debug("host info unavailable: %v", err)
		return nil
	}

	platform := info.Platform
	if info.PlatformVersion != "" {
		platform += " " + info.PlatformVersion
	}
	return &SystemInfo{
		Hostname: info.Hostname,
		OS:       info.OS,
		Platform: platform,
		Kernel:   info.KernelVersion,
		Arch:     info.KernelArch,
		BootTime: time.Unix(int64(info.BootTime), 0),
		Uptime:   time.Duration(info.Uptime) * time.Second,
	}
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
