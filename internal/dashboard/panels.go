package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/docker"
	"github.com/veroxsity/sysmon/internal/metrics"
)

// renderContext carries everything panel renderers read. Renderers never
// mutate it.
type renderContext struct {
	snap       *metrics.Snapshot
	docker     docker.Snapshot
	history    *History
	alerts     []Alert
	state      ViewState
	thresholds config.ThresholdConfig
	width      int // content width inside the panel border
}

const (
	barWidth       = 14
	sparklineWidth = 30
)

// renderPanel renders one panel with its border and title.
func renderPanel(kind PanelKind, ctx renderContext) string {
	var body string
	switch kind {
	case PanelSystem:
		body = renderSystem(ctx)
	case PanelCPU:
		body = renderCPU(ctx)
	case PanelMemory:
		body = renderMemory(ctx)
	case PanelDisk:
		body = renderDisk(ctx)
	case PanelNetwork:
		body = renderNetwork(ctx)
	case PanelGPU:
		body = renderGPU(ctx)
	case PanelBattery:
		body = renderBattery(ctx)
	case PanelProcesses:
		body = renderProcesses(ctx)
	case PanelAlerts:
		body = renderAlerts(ctx)
	case PanelContainers:
		body = renderContainers(ctx)
	case PanelServices:
		body = renderServices(ctx)
	}

	title := TitleStyle.Render(kind.String())
	return PanelStyle.Width(ctx.width).Render(title + "\n" + body)
}

func labeled(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-10s", label)) + ValueStyle.Render(value)
}

func renderSystem(ctx renderContext) string {
	sys := ctx.snap.System
	lines := []string{
		labeled("Host", sys.Hostname),
		labeled("OS", sys.Platform),
		labeled("Kernel", sys.Kernel+" ("+sys.Arch+")"),
		labeled("Uptime", FormatUptime(sys.Uptime)),
	}
	return strings.Join(lines, "\n")
}

func renderCPU(ctx renderContext) string {
	c := ctx.snap.CPU
	th := ctx.thresholds.CPU

	usage := fmt.Sprintf("%5.1f%%", c.Usage)
	lines := []string{
		ProgressBar(barWidth, c.Usage, th.Warning, th.Critical) + " " +
			MetricStyle(c.Usage, th.Warning, th.Critical).Render(usage),
	}

	if len(ctx.history.CPU(2)) >= 2 {
		lines = append(lines, ColoredSparkline(ctx.history.CPU(sparklineWidth), sparklineWidth, th.Warning, th.Critical))
	} else {
		lines = append(lines, MutedStyle.Render(NoDataLabel))
	}

	if c.CountLogical > 0 {
		cores := fmt.Sprintf("%d cores", c.CountLogical)
		if c.CountPhysical > 0 && c.CountPhysical != c.CountLogical {
			cores = fmt.Sprintf("%d cores (%d physical)", c.CountLogical, c.CountPhysical)
		}
		lines = append(lines, labeled("Cores", cores))
	}
	if c.Freq != nil {
		lines = append(lines, labeled("Freq", FormatFrequency(c.Freq.Current)))
	}
	if c.Load != nil {
		lines = append(lines, labeled("Load",
			fmt.Sprintf("%.2f %.2f %.2f", c.Load.Load1, c.Load.Load5, c.Load.Load15)))
	}
	if c.Temperature != nil {
		tth := ctx.thresholds.Temperature
		temp := fmt.Sprintf("%.0f°C", *c.Temperature)
		lines = append(lines, LabelStyle.Render(fmt.Sprintf("%-10s", "Temp"))+
			MetricStyle(*c.Temperature, tth.Warning, tth.Critical).Render(temp))
	}

	return strings.Join(lines, "\n")
}

func renderMemory(ctx renderContext) string {
	m := ctx.snap.Memory
	th := ctx.thresholds.Memory

	lines := []string{
		ProgressBar(barWidth, m.Percent, th.Warning, th.Critical) + " " +
			MetricStyle(m.Percent, th.Warning, th.Critical).Render(fmt.Sprintf("%5.1f%%", m.Percent)),
		labeled("Used", FormatBytes(m.Used)+" / "+FormatBytes(m.Total)),
	}

	if len(ctx.history.Memory(2)) >= 2 {
		lines = append(lines, ColoredSparkline(ctx.history.Memory(sparklineWidth), sparklineWidth, th.Warning, th.Critical))
	}

	if m.SwapTotal > 0 {
		lines = append(lines,
			labeled("Swap", fmt.Sprintf("%s / %s (%.1f%%)",
				FormatBytes(m.SwapUsed), FormatBytes(m.SwapTotal), m.SwapPercent)))
	}
	return strings.Join(lines, "\n")
}

func renderDisk(ctx renderContext) string {
	th := ctx.thresholds.Disk
	var lines []string
	for _, d := range ctx.snap.Disks {
		mount := truncateString(d.Mountpoint, 12)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			LabelStyle.Render(fmt.Sprintf("%-12s", mount)),
			ProgressBar(barWidth, d.Percent, th.Warning, th.Critical),
			MetricStyle(d.Percent, th.Warning, th.Critical).Render(fmt.Sprintf("%5.1f%%", d.Percent))))
		lines = append(lines, MutedStyle.Render(
			fmt.Sprintf("  %s / %s", FormatBytes(d.Used), FormatBytes(d.Total))))
	}
	return strings.Join(lines, "\n")
}

func renderNetwork(ctx renderContext) string {
	n := ctx.snap.Network

	lines := []string{
		labeled("Up", FormatRate(n.UploadRate)),
		labeled("Down", FormatRate(n.DownloadRate)),
	}

	down := ctx.history.NetworkDownload(sparklineWidth)
	if len(down) >= 2 {
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorGraph).Render(Sparkline(down, sparklineWidth)))
	} else {
		lines = append(lines, MutedStyle.Render(NoDataLabel))
	}

	lines = append(lines, labeled("Total",
		"↑"+FormatBytes(n.TotalSent)+" ↓"+FormatBytes(n.TotalRecv)))

	if len(n.Interfaces) > 0 {
		var up []string
		for _, ifc := range n.Interfaces {
			if ifc.Up {
				up = append(up, ifc.Name)
			}
		}
		if len(up) > 0 {
			lines = append(lines, labeled("Links", truncateString(strings.Join(up, " "), 28)))
		}
	}
	return strings.Join(lines, "\n")
}

func renderGPU(ctx renderContext) string {
	var lines []string
	for _, g := range ctx.snap.GPUs {
		lines = append(lines, ValueStyle.Render(truncateString(g.Name, 28)))
		lines = append(lines, fmt.Sprintf("%s %s",
			ProgressBar(barWidth, g.Load, 70, 90),
			MetricStyle(g.Load, 70, 90).Render(fmt.Sprintf("%5.1f%%", g.Load))))
		lines = append(lines, MutedStyle.Render(
			fmt.Sprintf("  %.0f / %.0f MiB  %.0f°C", g.MemoryUsed, g.MemoryTotal, g.Temperature)))
	}
	return strings.Join(lines, "\n")
}

func renderBattery(ctx renderContext) string {
	b := ctx.snap.Battery

	state := "discharging"
	if b.Plugged {
		state = "plugged in"
	}
	// Low battery severity runs opposite to usage metrics
	color := ColorHealthy
	switch {
	case b.Percent <= 10:
		color = ColorCrit
	case b.Percent <= 25:
		color = ColorWarning
	}

	return ProgressBar(barWidth, b.Percent, 101, 102) + " " +
		lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%.0f%%", b.Percent)) +
		"\n" + labeled("State", state)
}

func renderProcesses(ctx renderContext) string {
	procs := SortProcesses(ctx.snap.Processes, ctx.state.SortKey)

	header := MutedStyle.Render(fmt.Sprintf("%7s %-18s %6s %6s",
		"PID", "NAME", "CPU%", "MEM%"))
	lines := []string{header}

	for _, p := range procs {
		lines = append(lines, fmt.Sprintf("%7d %-18s %s %s",
			p.PID,
			truncateString(p.Name, 18),
			MetricStyle(p.CPUPercent, 50, 80).Render(fmt.Sprintf("%6.1f", p.CPUPercent)),
			MetricStyle(p.MemoryPercent, 50, 80).Render(fmt.Sprintf("%6.1f", p.MemoryPercent))))
	}

	lines = append(lines, MutedStyle.Render("sorted by "+string(ctx.state.SortKey)))
	return strings.Join(lines, "\n")
}

func renderAlerts(ctx renderContext) string {
	if len(ctx.alerts) == 0 {
		return MutedStyle.Render("No alerts")
	}

	var lines []string
	// Newest first
	for i := len(ctx.alerts) - 1; i >= 0; i-- {
		a := ctx.alerts[i]
		style := WarningStyle
		if a.Level == AlertCritical {
			style = CriticalStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			MutedStyle.Render(a.Time.Format("15:04:05")),
			style.Render(a.Level.String()),
			ValueStyle.Render(a.Message)))
	}
	return strings.Join(lines, "\n")
}

func renderContainers(ctx renderContext) string {
	if !ctx.docker.Available {
		return MutedStyle.Render("Docker engine not available")
	}
	if len(ctx.docker.Containers) == 0 {
		return MutedStyle.Render("No containers")
	}

	header := MutedStyle.Render(fmt.Sprintf("%-22s %-24s %s", "NAME", "IMAGE", "STATUS"))
	lines := []string{header}
	for _, c := range ctx.docker.Containers {
		status := lipgloss.NewStyle().Foreground(ColorHealthy)
		if c.State != "running" {
			status = MutedStyle
		}
		lines = append(lines, fmt.Sprintf("%-22s %-24s %s",
			truncateString(c.Name(), 22),
			truncateString(c.Image, 24),
			status.Render(c.Status)))
	}
	return strings.Join(lines, "\n")
}

func renderServices(ctx renderContext) string {
	var lines []string
	for _, s := range ctx.docker.Services {
		color := ColorHealthy
		if s.Running < s.Total {
			color = ColorWarning
		}
		if s.Running == 0 {
			color = ColorCrit
		}
		lines = append(lines, labeled(truncateString(s.Name, 10),
			lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%d/%d running", s.Running, s.Total))))
	}
	return strings.Join(lines, "\n")
}
