package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg  = lipgloss.Color("#0A0A0F")
	ColorBorder  = lipgloss.Color("#2A2A4A")
	ColorHealthy = lipgloss.Color("#39FF14")
	ColorWarning = lipgloss.Color("#FFAA00")
	ColorCrit    = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
	ColorGraph  = lipgloss.Color("#00FFFF")
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	CriticalStyle = lipgloss.NewStyle().
			Foreground(ColorCrit).
			Bold(true)
)

// MetricColor returns the severity color for a metric value against its
// warning and critical bounds.
func MetricColor(value, warning, critical float64) lipgloss.Color {
	switch {
	case value >= critical:
		return ColorCrit
	case value >= warning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the severity color for the value.
func MetricStyle(value, warning, critical float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(value, warning, critical))
}

// ProgressBar renders a percentage bar colored by severity.
func ProgressBar(width int, percent, warning, critical float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("▰")
		} else {
			bar.WriteString("▱")
		}
	}

	return lipgloss.NewStyle().
		Foreground(MetricColor(percent, warning, critical)).
		Render(bar.String())
}
