package dashboard

import (
	"sync"

	"github.com/veroxsity/sysmon/internal/metrics"
)

// DefaultHistorySize is the number of samples retained per metric series.
const DefaultHistorySize = 100

// History holds rolling per-metric series backed by fixed-size ring
// buffers. Once a buffer is full the oldest sample is overwritten, so
// memory use is constant no matter how long the dashboard runs.
type History struct {
	mu   sync.RWMutex
	size int

	cpu       *ringBuffer
	memory    *ringBuffer
	netUpload *ringBuffer
	netDownld *ringBuffer
}

// NewHistory creates a history store with the specified capacity per series.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:      size,
		cpu:       newRingBuffer(size),
		memory:    newRingBuffer(size),
		netUpload: newRingBuffer(size),
		netDownld: newRingBuffer(size),
	}
}

// Push records the series values present in the snapshot. An absent metric
// leaves its series untouched rather than pushing a zero, so sparklines
// never show phantom dips.
func (h *History) Push(snap *metrics.Snapshot) {
	if snap == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if snap.CPU != nil {
		h.cpu.push(snap.CPU.Usage)
	}
	if snap.Memory != nil {
		h.memory.push(snap.Memory.Percent)
	}
	if snap.Network != nil {
		// Stored in KB/s to keep sparkline scales readable
		h.netUpload.push(snap.Network.UploadRate / 1024)
		h.netDownld.push(snap.Network.DownloadRate / 1024)
	}
}

// CPU returns up to count recent CPU usage samples, oldest first.
func (h *History) CPU(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cpu.getLast(count)
}

// Memory returns up to count recent memory usage samples, oldest first.
func (h *History) Memory(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.memory.getLast(count)
}

// NetworkUpload returns up to count recent upload samples in KB/s, oldest first.
func (h *History) NetworkUpload(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.netUpload.getLast(count)
}

// NetworkDownload returns up to count recent download samples in KB/s, oldest first.
func (h *History) NetworkDownload(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.netDownld.getLast(count)
}

// Len reports the number of CPU samples stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cpu.count
}

// Clear drops all stored samples.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cpu = newRingBuffer(h.size)
	h.memory = newRingBuffer(h.size)
	h.netUpload = newRingBuffer(h.size)
	h.netDownld = newRingBuffer(h.size)
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
