package dashboard

import (
	"time"

	"github.com/veroxsity/sysmon/internal/config"
)

// View selects which screen the dashboard renders.
type View int

const (
	ViewMain View = iota
	ViewContainers
	ViewAlerts
)

// String returns a human-readable label for the view.
func (v View) String() string {
	switch v {
	case ViewContainers:
		return "containers"
	case ViewAlerts:
		return "alerts"
	default:
		return "main"
	}
}

// Refresh interval bounds for runtime adjustment.
const (
	MinInterval  = 500 * time.Millisecond
	MaxInterval  = 10 * time.Second
	IntervalStep = 500 * time.Millisecond
)

// ViewState is the user-controlled presentation state: active view, panel
// visibility, process ordering and refresh cadence. It changes only through
// key handling, never from collected data.
type ViewState struct {
	View     View
	Panels   config.PanelConfig
	SortKey  config.SortKey
	Interval time.Duration
	ShowHelp bool
}

// NewViewState seeds presentation state from configuration.
func NewViewState(cfg *config.Config) ViewState {
	return ViewState{
		View:     ViewMain,
		Panels:   cfg.Panels,
		SortKey:  cfg.ProcessSortKey,
		Interval: cfg.Interval(),
	}
}

// CycleSortKey advances the process table ordering.
func (s *ViewState) CycleSortKey() {
	switch s.SortKey {
	case config.SortByCPU:
		s.SortKey = config.SortByMemory
	case config.SortByMemory:
		s.SortKey = config.SortByPID
	case config.SortByPID:
		s.SortKey = config.SortByName
	default:
		s.SortKey = config.SortByCPU
	}
}

// AdjustInterval moves the refresh cadence by the given number of steps,
// clamped to the supported range.
func (s *ViewState) AdjustInterval(steps int) {
	s.Interval += time.Duration(steps) * IntervalStep
	if s.Interval < MinInterval {
		s.Interval = MinInterval
	}
	if s.Interval > MaxInterval {
		s.Interval = MaxInterval
	}
}

// TogglePanel flips a panel's visibility flag. Unknown names are ignored.
func (s *ViewState) TogglePanel(name string) {
	switch name {
	case "system":
		s.Panels.System = !s.Panels.System
	case "cpu":
		s.Panels.CPU = !s.Panels.CPU
	case "memory":
		s.Panels.Memory = !s.Panels.Memory
	case "disk":
		s.Panels.Disk = !s.Panels.Disk
	case "network":
		s.Panels.Network = !s.Panels.Network
	case "gpu":
		s.Panels.GPU = !s.Panels.GPU
	case "battery":
		s.Panels.Battery = !s.Panels.Battery
	}
}
