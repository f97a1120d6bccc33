// FILE: lixenwraith/alog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/alog"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter routes fasthttp server logs into an alog submitter
type FastHTTPAdapter struct {
	logger        alog.Submitter
	defaultLevel  int64
	levelDetector func(string) int64 // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger alog.Submitter, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  alog.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when detection finds nothing
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content.
// A detector result of LevelInfo means "no opinion" and falls back to the default level.
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != alog.LevelInfo {
			level = detected
		}
	}

	a.logger.Submit(level, "fasthttp: "+msg)
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) int64 {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return alog.LevelError
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return alog.LevelWarning
	}

	if strings.Contains(msgLower, "trace") {
		return alog.LevelTrace
	}

	if strings.Contains(msgLower, "debug") {
		return alog.LevelDebug
	}

	return alog.LevelInfo
}
