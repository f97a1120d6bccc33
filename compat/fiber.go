// FILE: lixenwraith/alog/compat/fiber.go
package compat

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/formatter"
)

// FiberAdapter routes logs shaped like Fiber v2 CommonLogger (plain, f and w variants) into an alog submitter.
// Key-value pairs of the w variants are rendered as " key=value" after the message.
type FiberAdapter struct {
	logger       alog.Submitter
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(logger alog.Submitter, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
		panicHandler: func(msg string) {
			panic(msg)
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// --- Logger interface ---

func (a *FiberAdapter) Trace(v ...any) { a.submit(alog.LevelTrace, fmt.Sprint(v...)) }
func (a *FiberAdapter) Debug(v ...any) { a.submit(alog.LevelDebug, fmt.Sprint(v...)) }
func (a *FiberAdapter) Info(v ...any)  { a.submit(alog.LevelInfo, fmt.Sprint(v...)) }
func (a *FiberAdapter) Warn(v ...any)  { a.submit(alog.LevelWarning, fmt.Sprint(v...)) }
func (a *FiberAdapter) Error(v ...any) { a.submit(alog.LevelError, fmt.Sprint(v...)) }

func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.fatal(msg, msg)
}

func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.panic(msg, msg)
}

// Write makes FiberAdapter an io.Writer, each write is one info line
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	a.submit(alog.LevelInfo, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// --- FormatLogger interface ---

func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.submit(alog.LevelTrace, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.submit(alog.LevelDebug, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Infof(format string, v ...any) {
	a.submit(alog.LevelInfo, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.submit(alog.LevelWarning, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.submit(alog.LevelError, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.fatal(msg, msg)
}

func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.panic(msg, msg)
}

// --- WithLogger interface ---

func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.submit(alog.LevelTrace, withFields(msg, keysAndValues))
}

func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.submit(alog.LevelDebug, withFields(msg, keysAndValues))
}

func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.submit(alog.LevelInfo, withFields(msg, keysAndValues))
}

func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.submit(alog.LevelWarning, withFields(msg, keysAndValues))
}

func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.submit(alog.LevelError, withFields(msg, keysAndValues))
}

func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.fatal(withFields(msg, keysAndValues), msg)
}

func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.panic(withFields(msg, keysAndValues), msg)
}

func (a *FiberAdapter) submit(level int64, msg string) {
	a.logger.Submit(level, "fiber: "+msg)
}

// fatal logs at critical level, waits briefly for the line and triggers the fatal handler
func (a *FiberAdapter) fatal(line, msg string) {
	a.submit(alog.LevelCritical, line)
	if f, ok := a.logger.(flusher); ok {
		_ = f.Flush(fatalFlushTimeout)
	}
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// panic logs at critical level, waits briefly for the line and triggers the panic handler
func (a *FiberAdapter) panic(line, msg string) {
	a.submit(alog.LevelCritical, line)
	if f, ok := a.logger.(flusher); ok {
		_ = f.Flush(fatalFlushTimeout)
	}
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// withFields appends " key=value" pairs to msg; a trailing key without value is kept as is
func withFields(msg string, keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		sb.WriteByte(' ')
		sb.WriteString(formatter.Join(keysAndValues[i]))
		if i+1 < len(keysAndValues) {
			sb.WriteByte('=')
			sb.WriteString(formatter.Join(keysAndValues[i+1]))
		}
	}
	return sb.String()
}
