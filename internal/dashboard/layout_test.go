package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/docker"
	"github.com/veroxsity/sysmon/internal/metrics"
)

func fullSnapshot() *metrics.Snapshot {
	return &metrics.Snapshot{
		System:  &metrics.SystemInfo{Hostname: "box"},
		CPU:     &metrics.CPUStats{Usage: 10},
		Memory:  &metrics.MemoryStats{Percent: 40},
		Disks:   []metrics.DiskStats{{Mountpoint: "/", Percent: 30}},
		Network: &metrics.NetworkStats{},
		GPUs:    []metrics.GPUStats{{Name: "gpu0"}},
		Battery: &metrics.BatteryStats{Percent: 90},
		Processes: []metrics.ProcessStats{
			{PID: 1, Name: "init", CPUPercent: 0.1},
		},
	}
}

func TestComposeMainTwoColumns(t *testing.T) {
	state := NewViewState(config.DefaultConfig())

	l := Compose(fullSnapshot(), docker.Snapshot{}, 0, state, 160)

	require.Len(t, l.Columns, 2)
	// Left column groups related panels into rows
	assert.Equal(t, Column{
		Row{PanelSystem, PanelCPU},
		Row{PanelMemory, PanelDisk},
		Row{PanelNetwork, PanelBattery, PanelGPU},
	}, l.Columns[0])
	assert.Equal(t, Column{Row{PanelProcesses}}, l.Columns[1])
}

func TestComposeMainNarrowStacksSingleColumn(t *testing.T) {
	state := NewViewState(config.DefaultConfig())

	l := Compose(fullSnapshot(), docker.Snapshot{}, 0, state, 80)

	require.Len(t, l.Columns, 1)
	panels := l.Panels()
	assert.Equal(t, PanelSystem, panels[0])
	assert.Equal(t, PanelProcesses, panels[len(panels)-1])
}

func TestComposeOmitsAbsentData(t *testing.T) {
	state := NewViewState(config.DefaultConfig())

	snap := fullSnapshot()
	snap.GPUs = nil
	snap.Battery = nil

	l := Compose(snap, docker.Snapshot{}, 0, state, 160)

	// GPU and battery panels vanish even though their flags are on
	assert.NotContains(t, l.Panels(), PanelGPU)
	assert.NotContains(t, l.Panels(), PanelBattery)
}

func TestComposeHonorsVisibilityFlags(t *testing.T) {
	state := NewViewState(config.DefaultConfig())
	state.Panels.Disk = false
	state.Panels.Battery = false

	l := Compose(fullSnapshot(), docker.Snapshot{}, 0, state, 160)

	assert.NotContains(t, l.Panels(), PanelDisk)
	assert.NotContains(t, l.Panels(), PanelBattery)
	// Partially suppressed rows keep their remaining panels
	assert.Contains(t, l.Panels(), PanelMemory)
	assert.Contains(t, l.Panels(), PanelNetwork)
}

func TestComposeAllFlagsOffKeepsProcessPanel(t *testing.T) {
	state := NewViewState(config.DefaultConfig())
	state.Panels = config.PanelConfig{}

	l := Compose(fullSnapshot(), docker.Snapshot{}, 0, state, 160)

	// The process table has no flag and survives a fully suppressed config
	assert.Equal(t, []PanelKind{PanelProcesses}, l.Panels())
}

func TestComposeAlertSplit(t *testing.T) {
	state := NewViewState(config.DefaultConfig())

	l := Compose(fullSnapshot(), docker.Snapshot{}, AlertSplitCount, state, 160)
	assert.Equal(t, Column{Row{PanelProcesses}}, l.Columns[1])

	// More than AlertSplitCount alerts earn their own panel above the table
	l = Compose(fullSnapshot(), docker.Snapshot{}, AlertSplitCount+1, state, 160)
	assert.Equal(t, Column{Row{PanelAlerts}, Row{PanelProcesses}}, l.Columns[1])
}

func TestComposeEmptySnapshot(t *testing.T) {
	state := NewViewState(config.DefaultConfig())

	l := Compose(nil, docker.Snapshot{}, 0, state, 160)
	assert.Empty(t, l.Columns)
}

func TestComposeContainersView(t *testing.T) {
	state := NewViewState(config.DefaultConfig())
	state.View = ViewContainers

	// Engine unavailable: the containers panel still renders (as a notice)
	l := Compose(fullSnapshot(), docker.Snapshot{}, 0, state, 160)
	require.Len(t, l.Columns, 1)
	assert.Equal(t, []PanelKind{PanelContainers}, l.Panels())

	dockerSnap := docker.Snapshot{
		Available: true,
		Services:  []docker.ServiceSummary{{Name: "web", Running: 1, Total: 1}},
	}
	l = Compose(fullSnapshot(), dockerSnap, 0, state, 160)
	assert.Equal(t, []PanelKind{PanelContainers, PanelServices}, l.Panels())
}

func TestComposeAlertsView(t *testing.T) {
	state := NewViewState(config.DefaultConfig())
	state.View = ViewAlerts

	// Alert log on top, system summary beneath
	l := Compose(fullSnapshot(), docker.Snapshot{}, 0, state, 160)
	require.Len(t, l.Columns, 1)
	assert.Equal(t, []PanelKind{PanelAlerts, PanelSystem}, l.Panels())

	// Without host info only the log renders
	snap := fullSnapshot()
	snap.System = nil
	l = Compose(snap, docker.Snapshot{}, 0, state, 160)
	assert.Equal(t, []PanelKind{PanelAlerts}, l.Panels())
}

func TestSortProcesses(t *testing.T) {
	procs := []metrics.ProcessStats{
		{PID: 30, Name: "idle", CPUPercent: 1, MemoryPercent: 5},
		{PID: 10, Name: "Worker", CPUPercent: 50, MemoryPercent: 1},
		{PID: 20, Name: "db", CPUPercent: 50, MemoryPercent: 9},
	}

	byCPU := SortProcesses(procs, config.SortByCPU)
	// Equal CPU keeps capture order: pid 10 stays ahead of pid 20
	assert.Equal(t, []int32{10, 20, 30}, pids(byCPU))

	byMem := SortProcesses(procs, config.SortByMemory)
	assert.Equal(t, []int32{20, 30, 10}, pids(byMem))

	byPID := SortProcesses(procs, config.SortByPID)
	assert.Equal(t, []int32{10, 20, 30}, pids(byPID))

	// Name sort is case-insensitive
	byName := SortProcesses(procs, config.SortByName)
	assert.Equal(t, []int32{20, 30, 10}, pids(byName))

	// Input order is never mutated
	assert.Equal(t, []int32{30, 10, 20}, pids(procs))
}

func TestSortProcessesTruncates(t *testing.T) {
	var procs []metrics.ProcessStats
	for i := 0; i < MaxProcessRows+8; i++ {
		procs = append(procs, metrics.ProcessStats{
			PID:        int32(i),
			Name:       fmt.Sprintf("p%d", i),
			CPUPercent: float64(i),
		})
	}

	out := SortProcesses(procs, config.SortByCPU)
	require.Len(t, out, MaxProcessRows)
	// Highest CPU first after truncation
	assert.Equal(t, int32(MaxProcessRows+7), out[0].PID)
}

func pids(procs []metrics.ProcessStats) []int32 {
	out := make([]int32, len(procs))
	for i, p := range procs {
		out[i] = p.PID
	}
	return out
}
