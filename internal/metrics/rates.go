package metrics

// RateTracker derives per-second throughput from cumulative byte counters.
// Counters only grow, so a negative delta means the counter reset (interface
// bounce, counter wrap) and the rate for that cycle is reported as zero.
//
// Not safe for concurrent use; the collector is the single caller.
type RateTracker struct {
	prevSent uint64
	prevRecv uint64
	primed   bool
}

// NewRateTracker returns an unprimed tracker. The first Update call records
// the baseline and reports zero rates.
func NewRateTracker() *RateTracker {
	return &RateTracker{}
}

// Update ingests the current cumulative counters and the elapsed seconds
// since the previous call, returning upload and download rates in bytes/sec.
func (r *RateTracker) Update(sent, recv uint64, elapsed float64) (upload, download float64) {
	defer func() {
		r.prevSent = sent
		r.prevRecv = recv
		r.primed = true
	}()

	if !r.primed || elapsed <= 0 {
		return 0, 0
	}

	upload = counterRate(r.prevSent, sent, elapsed)
	download = counterRate(r.prevRecv, recv, elapsed)
	return upload, download
}

// Reset clears the baseline, forcing the next Update to report zero.
func (r *RateTracker) Reset() {
	r.prevSent = 0
	r.prevRecv = 0
	r.primed = false
}

func counterRate(prev, cur uint64, elapsed float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / elapsed
}
