// FILE: lixenwraith/alog/interface.go
package alog

// Submitter is the submission capability of a Logger, for injection into call sites
type Submitter interface {
	Submit(level int64, message string)
}

var _ Submitter = (*Logger)(nil)

// Trace logs a message at trace level
func (l *Logger) Trace(message string) {
	l.Submit(LevelTrace, message)
}

// Debug logs a message at debug level
func (l *Logger) Debug(message string) {
	l.Submit(LevelDebug, message)
}

// Info logs a message at info level
func (l *Logger) Info(message string) {
	l.Submit(LevelInfo, message)
}

// Warning logs a message at warning level
func (l *Logger) Warning(message string) {
	l.Submit(LevelWarning, message)
}

// Error logs a message at error level
func (l *Logger) Error(message string) {
	l.Submit(LevelError, message)
}

// Critical logs a message at critical level
func (l *Logger) Critical(message string) {
	l.Submit(LevelCritical, message)
}
