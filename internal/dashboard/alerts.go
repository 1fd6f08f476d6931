package dashboard

import (
	"fmt"
	"time"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/metrics"
)

// DefaultAlertLogSize bounds the alert log; older entries are evicted.
const DefaultAlertLogSize = 10

// AlertLevel is the severity of a threshold breach.
type AlertLevel int

const (
	AlertWarning AlertLevel = iota
	AlertCritical
)

// String returns a human-readable label for the alert level.
func (l AlertLevel) String() string {
	if l == AlertCritical {
		return "CRITICAL"
	}
	return "WARNING"
}

// Alert records a single threshold breach observed during one cycle.
type Alert struct {
	Level   AlertLevel
	Metric  string
	Message string
	Value   float64
	Time    time.Time
}

// Evaluator checks snapshots against configured thresholds and keeps a
// bounded log of breaches. Each monitored metric produces at most one alert
// per cycle; when a value crosses both bounds only the critical alert is
// recorded.
type Evaluator struct {
	thresholds config.ThresholdConfig
	logSize    int
	log        []Alert
}

// NewEvaluator returns an Evaluator with the given thresholds and an alert
// log bounded to logSize entries.
func NewEvaluator(thresholds config.ThresholdConfig, logSize int) *Evaluator {
	if logSize <= 0 {
		logSize = DefaultAlertLogSize
	}
	return &Evaluator{
		thresholds: thresholds,
		logSize:    logSize,
	}
}

// Evaluate checks one snapshot and returns the alerts raised this cycle,
// appending them to the log. Absent metrics raise nothing. A breach that
// persists across cycles is reported every cycle; the log is a recent
// activity feed, not a deduplicated incident list.
func (e *Evaluator) Evaluate(snap *metrics.Snapshot) []Alert {
	if snap == nil {
		return nil
	}

	var raised []Alert
	add := func(a *Alert) {
		if a != nil {
			a.Time = snap.Timestamp
			raised = append(raised, *a)
		}
	}

	if snap.CPU != nil {
		add(check("cpu", snap.CPU.Usage, e.thresholds.CPU,
			"CPU usage at %.1f%%"))

		if snap.CPU.Temperature != nil {
			add(check("temperature", *snap.CPU.Temperature, e.thresholds.Temperature,
				"CPU temperature at %.0f°C"))
		}
	}

	if snap.Memory != nil {
		add(check("memory", snap.Memory.Percent, e.thresholds.Memory,
			"Memory usage at %.1f%%"))
	}

	if worst := worstDisk(snap.Disks); worst != nil {
		if a := check("disk", worst.Percent, e.thresholds.Disk,
			"Disk usage at %.1f%%"); a != nil {
			a.Message += " on " + worst.Mountpoint
			add(a)
		}
	}

	e.append(raised)
	return raised
}

// Log returns the retained alerts, oldest first.
func (e *Evaluator) Log() []Alert {
	out := make([]Alert, len(e.log))
	copy(out, e.log)
	return out
}

// check compares a value against its threshold pair. A bound must be
// strictly exceeded; a value sitting exactly on it does not alert at that
// tier. Critical wins when both bounds are crossed.
func check(metric string, value float64, th config.Threshold, format string) *Alert {
	switch {
	case value > th.Critical:
		return &Alert{
			Level:   AlertCritical,
			Metric:  metric,
			Message: fmt.Sprintf(format, value),
			Value:   value,
		}
	case value > th.Warning:
		return &Alert{
			Level:   AlertWarning,
			Metric:  metric,
			Message: fmt.Sprintf(format, value),
			Value:   value,
		}
	}
	return nil
}

// worstDisk returns the fullest filesystem, which is the one worth alerting on.
func worstDisk(disks []metrics.DiskStats) *metrics.DiskStats {
	var worst *metrics.DiskStats
	for i := range disks {
		if worst == nil || disks[i].Percent > worst.Percent {
			worst = &disks[i]
		}
	}
	return worst
}

func (e *Evaluator) append(alerts []Alert) {
	e.log = append(e.log, alerts...)
	if overflow := len(e.log) - e.logSize; overflow > 0 {
		e.log = e.log[overflow:]
	}
}
