package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution
// (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// NoDataLabel is rendered in place of a sparkline until two samples exist.
const NoDataLabel = "No data"

// Sparkline renders a single-row block-character graph of the series,
// scaled to the observed min/max. A flat series fills the full width with
// the mid-level block so the line stays visible. Fewer than two samples
// yields NoDataLabel since a single point has no shape.
func Sparkline(data []float64, width int) string {
	if len(data) < 2 {
		return NoDataLabel
	}
	if width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		return strings.Repeat(string(sparklineBlocks[3]), width)
	}

	var b strings.Builder
	for _, v := range data {
		idx := int((v - minVal) / (maxVal - minVal) * float64(len(sparklineBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparklineBlocks)-1 {
			idx = len(sparklineBlocks) - 1
		}
		b.WriteRune(sparklineBlocks[idx])
	}
	return b.String()
}

// ColoredSparkline renders a sparkline tinted by the most recent value's
// severity against the given thresholds.
func ColoredSparkline(data []float64, width int, warning, critical float64) string {
	line := Sparkline(data, width)
	if len(data) < 2 {
		return lipgloss.NewStyle().Foreground(ColorTextMuted).Render(line)
	}
	color := MetricColor(data[len(data)-1], warning, critical)
	return lipgloss.NewStyle().Foreground(color).Render(line)
}
