package dashboard

import (
	"sort"
	"strings"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/docker"
	"github.com/veroxsity/sysmon/internal/metrics"
)

// PanelKind identifies a renderable dashboard panel.
type PanelKind int

const (
	PanelSystem PanelKind = iota
	PanelCPU
	PanelMemory
	PanelDisk
	PanelNetwork
	PanelGPU
	PanelBattery
	PanelProcesses
	PanelAlerts
	PanelContainers
	PanelServices
)

// String returns the panel's display title.
func (k PanelKind) String() string {
	switch k {
	case PanelSystem:
		return "System"
	case PanelCPU:
		return "CPU"
	case PanelMemory:
		return "Memory"
	case PanelDisk:
		return "Disk"
	case PanelNetwork:
		return "Network"
	case PanelGPU:
		return "GPU"
	case PanelBattery:
		return "Battery"
	case PanelProcesses:
		return "Processes"
	case PanelAlerts:
		return "Alerts"
	case PanelContainers:
		return "Containers"
	case PanelServices:
		return "Services"
	default:
		return "?"
	}
}

// Row is a group of panels displayed together: side by side when it holds
// one or two panels, stacked vertically when it holds three or more.
type Row []PanelKind

// Column is a vertical stack of rows.
type Column []Row

// Layout is the composed arrangement of panels for one render pass.
type Layout struct {
	Columns []Column
}

// Panels returns every panel in the layout, in render order.
func (l Layout) Panels() []PanelKind {
	var out []PanelKind
	for _, col := range l.Columns {
		for _, row := range col {
			out = append(out, row...)
		}
	}
	return out
}

// Layout breakpoints and limits.
const (
	// TwoColumnBreakpoint is the minimum terminal width for the side-by-side
	// main view; narrower terminals stack everything in one column.
	TwoColumnBreakpoint = 100

	// MaxProcessRows caps the process table.
	MaxProcessRows = 12

	// AlertSplitCount is the alert-log size past which the main view gives
	// alerts their own panel above the process table.
	AlertSplitCount = 3
)

// Compose decides which panels appear and where, as a pure function of its
// inputs. An optional panel appears only when its visibility flag is on AND
// its backing data exists in the snapshot; the flag can suppress a panel but
// never conjure one without data. The process panel is not suppressible.
func Compose(snap *metrics.Snapshot, dockerSnap docker.Snapshot, alertCount int, state ViewState, width int) Layout {
	if snap == nil {
		snap = &metrics.Snapshot{}
	}

	switch state.View {
	case ViewContainers:
		return composeContainers(dockerSnap)
	case ViewAlerts:
		return composeAlerts(snap)
	default:
		return composeMain(snap, alertCount, state, width)
	}
}

func composeMain(snap *metrics.Snapshot, alertCount int, state ViewState, width int) Layout {
	pick := func(kinds ...PanelKind) Row {
		var row Row
		for _, k := range kinds {
			if mainPanelReady(k, snap, state) {
				row = append(row, k)
			}
		}
		return row
	}

	var left Column
	for _, row := range []Row{
		pick(PanelSystem, PanelCPU),
		pick(PanelMemory, PanelDisk),
		pick(PanelNetwork, PanelBattery, PanelGPU),
	} {
		if len(row) > 0 {
			left = append(left, row)
		}
	}

	var right Column
	if alertCount > AlertSplitCount {
		right = append(right, Row{PanelAlerts})
	}
	if len(snap.Processes) > 0 {
		right = append(right, Row{PanelProcesses})
	}

	if width < TwoColumnBreakpoint {
		return Layout{Columns: []Column{append(left, right...)}}
	}

	switch {
	case len(left) == 0 && len(right) == 0:
		return Layout{}
	case len(right) == 0:
		return Layout{Columns: []Column{left}}
	case len(left) == 0:
		return Layout{Columns: []Column{right}}
	default:
		return Layout{Columns: []Column{left, right}}
	}
}

// mainPanelReady applies the visibility-AND-data rule for one panel.
func mainPanelReady(k PanelKind, snap *metrics.Snapshot, state ViewState) bool {
	switch k {
	case PanelSystem:
		return state.Panels.System && snap.System != nil
	case PanelCPU:
		return state.Panels.CPU && snap.CPU != nil
	case PanelMemory:
		return state.Panels.Memory && snap.Memory != nil
	case PanelDisk:
		return state.Panels.Disk && len(snap.Disks) > 0
	case PanelNetwork:
		return state.Panels.Network && snap.Network != nil
	case PanelGPU:
		return state.Panels.GPU && len(snap.GPUs) > 0
	case PanelBattery:
		return state.Panels.Battery && snap.Battery != nil
	default:
		return false
	}
}

func composeContainers(dockerSnap docker.Snapshot) Layout {
	col := Column{Row{PanelContainers}}
	if dockerSnap.Available && len(dockerSnap.Services) > 0 {
		col = append(col, Row{PanelServices})
	}
	return Layout{Columns: []Column{col}}
}

func composeAlerts(snap *metrics.Snapshot) Layout {
	col := Column{Row{PanelAlerts}}
	if snap.System != nil {
		col = append(col, Row{PanelSystem})
	}
	return Layout{Columns: []Column{col}}
}

// SortProcesses orders the process table by the given key, descending for
// the usage columns, and truncates to MaxProcessRows. The sort is stable so
// equal values keep their capture order and the table does not jitter
// between refreshes.
func SortProcesses(procs []metrics.ProcessStats, key config.SortKey) []metrics.ProcessStats {
	out := make([]metrics.ProcessStats, len(procs))
	copy(out, procs)

	switch key {
	case config.SortByMemory:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MemoryPercent > out[j].MemoryPercent
		})
	case config.SortByPID:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PID < out[j].PID
		})
	case config.SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CPUPercent > out[j].CPUPercent
		})
	}

	if len(out) > MaxProcessRows {
		out = out[:MaxProcessRows]
	}
	return out
}
