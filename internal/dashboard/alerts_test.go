package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/metrics"
)

func testThresholds() config.ThresholdConfig {
	return config.DefaultConfig().Thresholds
}

func TestEvaluateNoBreaches(t *testing.T) {
	e := NewEvaluator(testThresholds(), 10)

	raised := e.Evaluate(snapshotWith(50, 50, 0, 0))
	assert.Empty(t, raised)
	assert.Empty(t, e.Log())
}

func TestEvaluateLevels(t *testing.T) {
	tests := []struct {
		name      string
		cpu       float64
		wantCount int
		wantLevel AlertLevel
	}{
		{"below warning", 79.9, 0, 0},
		{"exactly at warning stays quiet", 80, 0, 0},
		{"just past warning", 80.1, 1, AlertWarning},
		{"between bounds", 90, 1, AlertWarning},
		{"exactly at critical is only a warning", 95, 1, AlertWarning},
		{"beyond critical", 99, 1, AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(testThresholds(), 10)
			raised := e.Evaluate(snapshotWith(tt.cpu, 10, 0, 0))

			require.Len(t, raised, tt.wantCount)
			if tt.wantCount > 0 {
				// A value past both bounds raises only the critical alert
				assert.Equal(t, tt.wantLevel, raised[0].Level)
				assert.Equal(t, "cpu", raised[0].Metric)
				assert.Equal(t, tt.cpu, raised[0].Value)
			}
		})
	}
}

func TestEvaluateAllMetrics(t *testing.T) {
	temp := 90.0
	snap := &metrics.Snapshot{
		Timestamp: time.Now(),
		CPU:       &metrics.CPUStats{Usage: 96, Temperature: &temp},
		Memory:    &metrics.MemoryStats{Percent: 85},
		Disks: []metrics.DiskStats{
			{Mountpoint: "/", Percent: 50},
			{Mountpoint: "/data", Percent: 91},
		},
	}

	e := NewEvaluator(testThresholds(), 10)
	raised := e.Evaluate(snap)

	require.Len(t, raised, 4)

	byMetric := make(map[string]Alert)
	for _, a := range raised {
		byMetric[a.Metric] = a
	}

	assert.Equal(t, AlertCritical, byMetric["cpu"].Level)
	assert.Equal(t, AlertWarning, byMetric["memory"].Level)
	assert.Equal(t, AlertCritical, byMetric["temperature"].Level)

	// Only the fullest disk alerts, and its mountpoint is named
	assert.Equal(t, AlertWarning, byMetric["disk"].Level)
	assert.Contains(t, byMetric["disk"].Message, "/data")
}

func TestEvaluateAbsentMetrics(t *testing.T) {
	e := NewEvaluator(testThresholds(), 10)

	// Nothing readable this cycle: nothing to alert on
	raised := e.Evaluate(&metrics.Snapshot{Timestamp: time.Now()})
	assert.Empty(t, raised)

	assert.Empty(t, e.Evaluate(nil))
}

func TestAlertLogEviction(t *testing.T) {
	e := NewEvaluator(testThresholds(), 3)

	for i := 0; i < 5; i++ {
		e.Evaluate(snapshotWith(96, 10, 0, 0))
	}

	log := e.Log()
	require.Len(t, log, 3)
	// Persistent breaches repeat each cycle; the log keeps the newest
	for _, a := range log {
		assert.Equal(t, "cpu", a.Metric)
		assert.Equal(t, AlertCritical, a.Level)
	}
}

func TestAlertLevelString(t *testing.T) {
	assert.Equal(t, "WARNING", AlertWarning.String())
	assert.Equal(t, "CRITICAL", AlertCritical.String())
}
