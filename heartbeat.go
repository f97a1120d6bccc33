// FILE: lixenwraith/alog/heartbeat.go
package alog

import (
	"fmt"
	"runtime"
	"time"
)

// writeHeartbeat writes a stats line straight to the sinks.
// It bypasses the level gate, the queue and the metrics.
func (l *Logger) writeHeartbeat() {
	sequence := l.state.HeartbeatSequence.Add(1)

	var uptimeSeconds float64
	if startTime, ok := l.state.LoggerStartTime.Load().(time.Time); ok && !startTime.IsZero() {
		uptimeSeconds = time.Since(startTime).Seconds()
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	allocMB := float64(memStats.Alloc) / (1024 * 1024)

	s := l.Stats()
	message := fmt.Sprintf("heartbeat seq=%d uptime_s=%.1f submitted=%d filtered=%d processed=%d dropped=%d pending=%d avg_processing_ms=%.4f alloc_mb=%.2f num_gc=%d num_goroutine=%d",
		sequence, uptimeSeconds,
		s.Submitted, s.Filtered, s.Processed, s.Dropped, s.Pending, s.AvgProcessingTimeMs,
		allocMB, memStats.NumGC, runtime.NumGoroutine())

	line := l.formatter.Load().Format(time.Now(), LevelName(LevelInfo), message)
	l.sinks.writeLine(line, l.reportSinkError)
}
