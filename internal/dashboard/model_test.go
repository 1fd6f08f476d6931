package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/logger"
	"github.com/veroxsity/sysmon/internal/metrics"
)

func newTestModel() Model {
	cfg := config.DefaultConfig()
	return NewModel(cfg, metrics.NewCollector(logger.Noop()), nil, logger.Noop())
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModelSnapshotCycle(t *testing.T) {
	m := newTestModel()

	snap := fullSnapshot()
	snap.Timestamp = time.Now()
	m, _ = update(t, m, snapshotMsg{snap: snap, time: snap.Timestamp})

	assert.Equal(t, snap, m.snapshot)
	assert.Equal(t, 1, m.history.Len())
	assert.Empty(t, m.lastErr)
}

func TestModelFailedCycleKeepsPreviousSnapshot(t *testing.T) {
	m := newTestModel()

	snap := fullSnapshot()
	m, _ = update(t, m, snapshotMsg{snap: snap, time: time.Now()})

	m, _ = update(t, m, snapshotMsg{err: assert.AnError, time: time.Now()})

	// Old data stays on screen, the failure shows in the footer,
	// and no phantom sample lands in history
	assert.Equal(t, snap, m.snapshot)
	assert.Equal(t, 1, m.history.Len())
	assert.NotEmpty(t, m.lastErr)

	// A later good cycle clears the error
	m, _ = update(t, m, snapshotMsg{snap: fullSnapshot(), time: time.Now()})
	assert.Empty(t, m.lastErr)
}

func TestModelSkipsOverlappingCollects(t *testing.T) {
	m := newTestModel()
	m.state.Interval = time.Millisecond

	// The initial collect issued by Init is still pending, so ticks only
	// reschedule themselves instead of starting a second collect; the
	// collector's previous-counter state has a single writer
	require.True(t, m.collecting)

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.True(t, m.collecting)
	require.NotNil(t, cmd)
	assert.IsType(t, tickMsg{}, cmd())

	m, cmd = update(t, m, tickMsg(time.Now()))
	assert.IsType(t, tickMsg{}, cmd())

	// Once the snapshot lands, the next tick collects again
	m, _ = update(t, m, snapshotMsg{snap: fullSnapshot(), time: time.Now()})
	assert.False(t, m.collecting)

	m, cmd = update(t, m, tickMsg(time.Now()))
	assert.True(t, m.collecting)
	assert.IsType(t, tea.BatchMsg{}, cmd())
}

func TestModelQuitKeys(t *testing.T) {
	for _, msg := range []tea.Msg{keyMsg("q"), tea.KeyMsg{Type: tea.KeyCtrlC}} {
		m := newTestModel()
		m, cmd := update(t, m, msg)
		assert.True(t, m.quitting)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModelViewSwitching(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("2"))
	assert.Equal(t, ViewContainers, m.state.View)

	m, _ = update(t, m, keyMsg("3"))
	assert.Equal(t, ViewAlerts, m.state.View)

	m, _ = update(t, m, keyMsg("1"))
	assert.Equal(t, ViewMain, m.state.View)
}

func TestModelPanelToggleKeys(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("g"))
	assert.False(t, m.state.Panels.GPU)

	m, _ = update(t, m, keyMsg("c"))
	assert.False(t, m.state.Panels.CPU)

	m, _ = update(t, m, keyMsg("c"))
	assert.True(t, m.state.Panels.CPU)
}

func TestModelIntervalKeys(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("+"))
	assert.Equal(t, 1500*time.Millisecond, m.state.Interval)

	m, _ = update(t, m, keyMsg("-"))
	m, _ = update(t, m, keyMsg("-"))
	assert.Equal(t, MinInterval, m.state.Interval)
}

func TestModelSortKey(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("s"))
	assert.Equal(t, config.SortByMemory, m.state.SortKey)
}

func TestModelHelpOverlay(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("?"))
	assert.True(t, m.state.ShowHelp)
	assert.Contains(t, m.View(), "sysmon keys")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.state.ShowHelp)
}

func TestModelViewRenders(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})

	// Before the first snapshot a placeholder renders
	assert.Contains(t, m.View(), "Collecting metrics")

	snap := fullSnapshot()
	snap.Timestamp = time.Now()
	m, _ = update(t, m, snapshotMsg{snap: snap, time: snap.Timestamp})

	out := m.View()
	assert.Contains(t, out, "sysmon")
	assert.Contains(t, out, "System")
	assert.Contains(t, out, "Processes")

	// Containers view shows the unavailable notice without an engine
	m, _ = update(t, m, keyMsg("2"))
	assert.Contains(t, m.View(), "Docker engine not available")

	// Alerts view renders its empty state
	m, _ = update(t, m, keyMsg("3"))
	assert.Contains(t, m.View(), "No alerts")
}

func TestModelAlertsAccumulate(t *testing.T) {
	m := newTestModel()

	snap := fullSnapshot()
	snap.CPU.Usage = 97
	snap.Timestamp = time.Now()
	m, _ = update(t, m, snapshotMsg{snap: snap, time: snap.Timestamp})

	log := m.evaluator.Log()
	require.Len(t, log, 1)
	assert.Equal(t, AlertCritical, log[0].Level)
}

func TestModelQuitViewIsEmpty(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, keyMsg("q"))
	assert.Equal(t, "", m.View())
}
