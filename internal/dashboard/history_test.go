package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veroxsity/sysmon/internal/metrics"
)

func snapshotWith(cpu, mem float64, upKB, downKB float64) *metrics.Snapshot {
	return &metrics.Snapshot{
		CPU:    &metrics.CPUStats{Usage: cpu},
		Memory: &metrics.MemoryStats{Percent: mem},
		Network: &metrics.NetworkStats{
			UploadRate:   upKB * 1024,
			DownloadRate: downKB * 1024,
		},
	}
}

func TestHistoryPushAndGet(t *testing.T) {
	h := NewHistory(10)

	h.Push(snapshotWith(10, 40, 1, 2))
	h.Push(snapshotWith(20, 50, 3, 4))
	h.Push(snapshotWith(30, 60, 5, 6))

	assert.Equal(t, []float64{10, 20, 30}, h.CPU(10))
	assert.Equal(t, []float64{40, 50, 60}, h.Memory(10))
	assert.Equal(t, []float64{1, 3, 5}, h.NetworkUpload(10))
	assert.Equal(t, []float64{2, 4, 6}, h.NetworkDownload(10))

	// Requesting fewer samples returns the most recent ones
	assert.Equal(t, []float64{20, 30}, h.CPU(2))
	assert.Equal(t, 3, h.Len())
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(3)

	for i := 1; i <= 5; i++ {
		h.Push(snapshotWith(float64(i), 0, 0, 0))
	}

	// Oldest samples evicted, capacity never exceeded
	assert.Equal(t, []float64{3, 4, 5}, h.CPU(10))
	assert.Equal(t, 3, h.Len())
}

func TestHistorySkipsAbsentMetrics(t *testing.T) {
	h := NewHistory(10)

	h.Push(snapshotWith(10, 40, 1, 1))
	h.Push(&metrics.Snapshot{CPU: &metrics.CPUStats{Usage: 20}})
	h.Push(snapshotWith(30, 60, 2, 2))

	// CPU got all three samples, memory and network only two
	assert.Equal(t, []float64{10, 20, 30}, h.CPU(10))
	assert.Equal(t, []float64{40, 60}, h.Memory(10))
	assert.Equal(t, []float64{1, 2}, h.NetworkUpload(10))
}

func TestHistoryNilSnapshot(t *testing.T) {
	h := NewHistory(10)
	h.Push(nil)
	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.CPU(10))
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(10)
	h.Push(snapshotWith(10, 40, 1, 1))
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.Memory(10))
}
