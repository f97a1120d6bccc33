// FILE: lixenwraith/alog/metrics.go
package alog

import (
	"sync/atomic"
	"time"
)

// metrics holds the pipeline volume counters, all monotonically non-decreasing
type metrics struct {
	submitted       atomic.Uint64
	filtered        atomic.Uint64
	rejected        atomic.Uint64 // Refused by a full queue under drop_newest
	processed       atomic.Uint64
	processingNanos atomic.Int64 // Wall time spent writing batches
}

// Stats is a point-in-time snapshot of the logger metrics
type Stats struct {
	Submitted           uint64  `json:"submitted"`
	Filtered            uint64  `json:"filtered"`
	Processed           uint64  `json:"processed"`
	Dropped             uint64  `json:"dropped"`
	Pending             int64   `json:"pending"`
	AvgProcessingTimeMs float64 `json:"avg_processing_time_ms"`
}

// recordBatch accounts a written batch
func (m *metrics) recordBatch(n int, elapsed time.Duration) {
	m.processed.Add(uint64(n))
	m.processingNanos.Add(int64(elapsed))
}

// avgProcessingTimeMs is defined as exactly 0 until something was processed
func (m *metrics) avgProcessingTimeMs() float64 {
	processed := m.processed.Load()
	if processed == 0 {
		return 0
	}
	totalMs := float64(m.processingNanos.Load()) / float64(time.Millisecond)
	return totalMs / float64(processed)
}

// Submitted returns the number of Submit calls, admitted or not
func (l *Logger) Submitted() uint64 {
	return l.metrics.submitted.Load()
}

// Filtered returns the number of submissions rejected by the level threshold
func (l *Logger) Filtered() uint64 {
	return l.metrics.filtered.Load()
}

// Processed returns the number of entries written to the sink set
func (l *Logger) Processed() uint64 {
	return l.metrics.processed.Load()
}

// Dropped returns the number of admitted entries lost to the queue overflow policy
func (l *Logger) Dropped() uint64 {
	return l.metrics.rejected.Load() + l.queue.evicted()
}

// Pending returns a best-effort count of queued entries
func (l *Logger) Pending() int64 {
	return l.queue.approxSize()
}

// AvgProcessingTimeMs returns the mean batch write time per processed entry
func (l *Logger) AvgProcessingTimeMs() float64 {
	return l.metrics.avgProcessingTimeMs()
}

// Stats returns a snapshot of all metrics. Counters are read independently.
func (l *Logger) Stats() Stats {
	return Stats{
		Submitted:           l.Submitted(),
		Filtered:            l.Filtered(),
		Processed:           l.Processed(),
		Dropped:             l.Dropped(),
		Pending:             l.Pending(),
		AvgProcessingTimeMs: l.AvgProcessingTimeMs(),
	}
}
