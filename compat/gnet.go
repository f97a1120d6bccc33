// FILE: lixenwraith/alog/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/alog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// flusher is implemented by *alog.Logger
type flusher interface {
	Flush(timeout time.Duration) error
}

// fatalFlushTimeout bounds the wait for queued lines before a fatal handler runs
const fatalFlushTimeout = 100 * time.Millisecond

// GnetAdapter routes gnet engine logs into an alog submitter
type GnetAdapter struct {
	logger       alog.Submitter
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger alog.Submitter, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.submit(alog.LevelDebug, format, args)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.submit(alog.LevelInfo, format, args)
}

// Warnf logs at warning level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.submit(alog.LevelWarning, format, args)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.submit(alog.LevelError, format, args)
}

// Fatalf logs at critical level, waits briefly for the line to be written and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := a.submit(alog.LevelCritical, format, args)

	// Ensure log is flushed before exit
	if f, ok := a.logger.(flusher); ok {
		_ = f.Flush(fatalFlushTimeout)
	}

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// submit formats and submits, returning the unprefixed message
func (a *GnetAdapter) submit(level int64, format string, args []any) string {
	msg := fmt.Sprintf(format, args...)
	a.logger.Submit(level, "gnet: "+msg)
	return msg
}
