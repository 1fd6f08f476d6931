package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"

	KeyViewMain       = "1"
	KeyViewContainers = "2"
	KeyViewAlerts     = "3"

	KeyCycleSort = "s"

	KeyToggleCPU     = "c"
	KeyToggleMemory  = "m"
	KeyToggleDisk    = "d"
	KeyToggleNetwork = "n"
	KeyToggleGPU     = "g"
	KeyToggleBattery = "b"

	KeySlower = "+"
	KeyFaster = "-"

	KeyToggleHelp = "?"
	KeyCloseHelp  = "esc"
)

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.state.ShowHelp = !m.state.ShowHelp
		return true, nil
	}
	if m.state.ShowHelp && key == KeyCloseHelp {
		m.state.ShowHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyViewMain:
		m.state.View = ViewMain
		return true, nil
	case KeyViewContainers:
		m.state.View = ViewContainers
		return true, nil
	case KeyViewAlerts:
		m.state.View = ViewAlerts
		return true, nil

	case KeyCycleSort:
		m.state.CycleSortKey()
		return true, nil

	case KeyToggleCPU:
		m.state.TogglePanel("cpu")
		return true, nil
	case KeyToggleMemory:
		m.state.TogglePanel("memory")
		return true, nil
	case KeyToggleDisk:
		m.state.TogglePanel("disk")
		return true, nil
	case KeyToggleNetwork:
		m.state.TogglePanel("network")
		return true, nil
	case KeyToggleGPU:
		m.state.TogglePanel("gpu")
		return true, nil
	case KeyToggleBattery:
		m.state.TogglePanel("battery")
		return true, nil

	case KeySlower:
		m.state.AdjustInterval(1)
		return true, nil
	case KeyFaster:
		m.state.AdjustInterval(-1)
		return true, nil
	}

	return false, nil
}
