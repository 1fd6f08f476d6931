// Package dashboard implements the terminal dashboard: history store, alert
// evaluation, panel layout and the Bubble Tea refresh loop that ties them
// together.
package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/docker"
	"github.com/veroxsity/sysmon/internal/logger"
	"github.com/veroxsity/sysmon/internal/metrics"
)

// collectTimeout bounds one collection cycle; a cycle that cannot finish in
// time is skipped rather than stalling the UI.
const collectTimeout = 5 * time.Second

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	collector *metrics.Collector
	inspector *docker.Inspector
	history   *History
	evaluator *Evaluator
	log       logger.Logger

	thresholds config.ThresholdConfig
	state      ViewState

	snapshot   *metrics.Snapshot
	dockerSnap docker.Snapshot
	lastErr    string
	lastUpdate time.Time

	width    int
	height   int
	quitting bool

	// collecting is true while a collection cycle is in flight. The
	// collector and rate tracker keep previous-counter state and must
	// have a single writer, so overlapping cycles are skipped.
	collecting bool

	// Scrollable viewport for the containers and alerts views, whose
	// content can exceed the terminal height.
	bodyViewport  viewport.Model
	viewportReady bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// snapshotMsg carries one collection cycle's results.
type snapshotMsg struct {
	snap   *metrics.Snapshot
	docker docker.Snapshot
	err    error
	time   time.Time
}

// NewModel wires the dashboard from its parts.
func NewModel(cfg *config.Config, collector *metrics.Collector, inspector *docker.Inspector, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}
	return Model{
		collector:  collector,
		inspector:  inspector,
		history:    NewHistory(DefaultHistorySize),
		evaluator:  NewEvaluator(cfg.Thresholds, DefaultAlertLogSize),
		log:        log,
		thresholds: cfg.Thresholds,
		state:      NewViewState(cfg),
		// Init issues the first collect
		collecting: true,
	}
}

// Init triggers the first collection and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.collectCmd(), m.tickCmd())
}

// Update handles messages and advances the refresh loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			m.syncViewport()
			return m, cmd
		}
		// Unhandled keys scroll the viewport on scrollable views
		if m.viewportReady && m.state.View != ViewMain {
			var cmd tea.Cmd
			m.bodyViewport, cmd = m.bodyViewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Header and footer each take one line
		viewportHeight := m.height - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.viewportReady {
			m.bodyViewport = viewport.New(m.width, viewportHeight)
			m.viewportReady = true
		} else {
			m.bodyViewport.Width = m.width
			m.bodyViewport.Height = viewportHeight
		}
		m.syncViewport()

	case tickMsg:
		// A cycle that outlasts the interval is not stacked; the next
		// tick after it finishes collects again.
		if m.collecting {
			return m, m.tickCmd()
		}
		m.collecting = true
		return m, tea.Batch(m.collectCmd(), m.tickCmd())

	case snapshotMsg:
		m.collecting = false
		if msg.err != nil {
			// Keep rendering the previous snapshot; a failed cycle is
			// reported in the footer, not fatal.
			m.lastErr = msg.err.Error()
			m.log.Warn("collection cycle failed: %v", msg.err)
			return m, nil
		}
		m.lastErr = ""
		m.lastUpdate = msg.time
		m.snapshot = msg.snap
		m.dockerSnap = msg.docker
		m.history.Push(msg.snap)
		m.evaluator.Evaluate(msg.snap)
		m.syncViewport()
	}

	return m, nil
}

// syncViewport refreshes the scrollable body content for the non-main views.
func (m *Model) syncViewport() {
	if !m.viewportReady || m.state.View == ViewMain {
		return
	}
	m.bodyViewport.SetContent(m.renderBody())
}

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.ShowHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	body := m.renderBody()
	if m.viewportReady && m.state.View != ViewMain {
		body = m.bodyViewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.state.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) collectCmd() tea.Cmd {
	collector := m.collector
	inspector := m.inspector
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()

		snap, err := collector.Collect(ctx)
		var dockerSnap docker.Snapshot
		if err == nil && inspector != nil {
			dockerSnap = inspector.Inspect(ctx)
		}
		return snapshotMsg{snap: snap, docker: dockerSnap, err: err, time: time.Now()}
	}
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("sysmon")
	views := []string{}
	for _, v := range []View{ViewMain, ViewContainers, ViewAlerts} {
		label := v.String()
		if v == m.state.View {
			views = append(views, TitleStyle.Render("["+label+"]"))
		} else {
			views = append(views, MutedStyle.Render(label))
		}
	}
	interval := MutedStyle.Render(m.state.Interval.String())
	return title + " " + strings.Join(views, " ") + " " + interval
}

func (m Model) renderBody() string {
	if m.snapshot == nil {
		return MutedStyle.Render("\n  Collecting metrics...")
	}

	alerts := m.evaluator.Log()
	layout := Compose(m.snapshot, m.dockerSnap, len(alerts), m.state, m.width)
	if len(layout.Columns) == 0 {
		return MutedStyle.Render("\n  All panels hidden")
	}

	colWidth := m.width
	if len(layout.Columns) > 1 {
		colWidth = m.width / len(layout.Columns)
	}

	ctx := renderContext{
		snap:       m.snapshot,
		docker:     m.dockerSnap,
		history:    m.history,
		alerts:     alerts,
		state:      m.state,
		thresholds: m.thresholds,
	}

	cols := make([]string, 0, len(layout.Columns))
	for _, column := range layout.Columns {
		rows := make([]string, 0, len(column))
		for _, row := range column {
			rows = append(rows, m.renderRow(row, colWidth, ctx))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderRow renders one panel group: one or two panels sit side by side
// sharing the column width, three or more stack vertically at full width.
func (m Model) renderRow(row Row, colWidth int, ctx renderContext) string {
	sideBySide := len(row) == 2

	panelWidth := colWidth
	if sideBySide {
		panelWidth = colWidth / len(row)
	}
	// Border and padding eat 4 cells per panel
	ctx.width = panelWidth - 4
	if ctx.width < 20 {
		ctx.width = 20
	}

	panels := make([]string, 0, len(row))
	for _, kind := range row {
		panels = append(panels, renderPanel(kind, ctx))
	}
	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m Model) renderFooter() string {
	if m.lastErr != "" {
		return FooterStyle.Render("collection error: " + m.lastErr)
	}

	parts := []string{"q quit", "1/2/3 view", "s sort", "+/- interval", "? help"}
	if !m.lastUpdate.IsZero() {
		parts = append(parts, "updated "+m.lastUpdate.Format("15:04:05"))
	}
	return FooterStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderHelp() string {
	rows := []string{
		TitleStyle.Render("sysmon keys"),
		"",
		labeled("q", "quit"),
		labeled("1 2 3", "main / containers / alerts view"),
		labeled("s", "cycle process sort"),
		labeled("c m d", "toggle cpu / memory / disk"),
		labeled("n g b", "toggle network / gpu / battery"),
		labeled("+ -", "slower / faster refresh"),
		labeled("?", "close help"),
	}
	return PanelStyle.Render(strings.Join(rows, "\n"))
}
