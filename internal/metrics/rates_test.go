package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateTracker(t *testing.T) {
	r := NewRateTracker()

	// First sample only primes the baseline
	up, down := r.Update(100, 200, 1)
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 0.0, down)

	tests := []struct {
		name     string
		sent     uint64
		recv     uint64
		elapsed  float64
		wantUp   float64
		wantDown float64
	}{
		{
			// recv shrank: counter reset clamps to zero instead of
			// producing a negative rate
			name:     "growth and counter reset",
			sent:     150,
			recv:     180,
			elapsed:  1,
			wantUp:   50,
			wantDown: 0,
		},
		{
			name:     "scaled by elapsed time",
			sent:     650,
			recv:     1180,
			elapsed:  2,
			wantUp:   250,
			wantDown: 500,
		},
		{
			name:     "no traffic",
			sent:     650,
			recv:     1180,
			elapsed:  1,
			wantUp:   0,
			wantDown: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := r.Update(tt.sent, tt.recv, tt.elapsed)
			assert.InDelta(t, tt.wantUp, up, 1e-9)
			assert.InDelta(t, tt.wantDown, down, 1e-9)
		})
	}
}

func TestRateTrackerZeroElapsed(t *testing.T) {
	r := NewRateTracker()
	r.Update(100, 100, 1)

	// Division by zero must not happen
	up, down := r.Update(500, 500, 0)
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 0.0, down)
}

func TestRateTrackerReset(t *testing.T) {
	r := NewRateTracker()
	r.Update(100, 100, 1)
	r.Reset()

	up, down := r.Update(900, 900, 1)
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 0.0, down)

	up, down = r.Update(1000, 1100, 1)
	assert.Equal(t, 100.0, up)
	assert.Equal(t, 200.0, down)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-5))
	assert.Equal(t, 42.5, ClampPercent(42.5))
	assert.Equal(t, 100.0, ClampPercent(104.2))
}

func TestMemoryPercentOf(t *testing.T) {
	assert.Equal(t, 0.0, MemoryPercentOf(10, 0))
	assert.Equal(t, 50.0, MemoryPercentOf(512, 1024))
}
