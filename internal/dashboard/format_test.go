package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1024 * 1024, "1.0MB"},
		{5 * 1024 * 1024 * 1024, "5.0GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0 B/s", FormatRate(0))
	assert.Equal(t, "500 B/s", FormatRate(500))
	assert.Equal(t, "2.0 KB/s", FormatRate(2048))
	assert.Equal(t, "1.5 MB/s", FormatRate(1.5*1024*1024))
}

func TestFormatFrequency(t *testing.T) {
	assert.Equal(t, "800 MHz", FormatFrequency(800))
	assert.Equal(t, "2.40 GHz", FormatFrequency(2400))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5m", FormatUptime(5*time.Minute))
	assert.Equal(t, "3h 20m", FormatUptime(3*time.Hour+20*time.Minute))
	assert.Equal(t, "2d 1h 0m", FormatUptime(49*time.Hour))
	assert.Equal(t, "0m", FormatUptime(-time.Minute))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "long na…", truncateString("long name here", 8))
	assert.Equal(t, "…", truncateString("abc", 1))
	assert.Equal(t, "", truncateString("abc", 0))
}
