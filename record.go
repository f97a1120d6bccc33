// FILE: lixenwraith/alog/record.go
package alog

import (
	"fmt"
	"strings"
	"time"
)

// Submit records a pre-formatted message at level. It never blocks on the worker or the sinks.
// Messages below the current level, or at LevelOff and above, are counted as filtered and discarded.
func (l *Logger) Submit(level int64, message string) {
	l.metrics.submitted.Add(1)

	if !l.gate.admits(level) {
		l.metrics.filtered.Add(1)
		return
	}

	entry := logEntry{
		Level:     level,
		Message:   message,
		TimeStamp: time.Now(),
	}

	if l.queue.push(entry) == pushRejected {
		l.metrics.rejected.Add(1)
	}
}

// internalLog handles writing internal logger diagnostics to the diagnostic writer, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	cfg := l.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "alog: " prefix
	if !strings.HasPrefix(format, "alog: ") {
		format = "alog: " + format
	}

	box, ok := l.state.DiagnosticWriter.Load().(*writerBox)
	if !ok || box == nil || box.w == nil {
		return
	}
	fmt.Fprintf(box.w, format, args...)
}
