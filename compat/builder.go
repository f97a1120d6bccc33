// FILE: lixenwraith/alog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/alog"
)

// Builder creates adapters for gnet, fasthttp and Fiber that share one logger.
// It can use an existing *alog.Logger or create and start one from an *alog.Config.
type Builder struct {
	logger *alog.Logger
	logCfg *alog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored and starting the logger is the caller's responsibility.
func (b *Builder) WithLogger(l *alog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("alog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// If neither WithLogger nor WithConfig is used, a default logger is created.
func (b *Builder) WithConfig(cfg *alog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating and starting one if necessary
func (b *Builder) getLogger() (*alog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := alog.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = alog.DefaultConfig()
	}

	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildFiber creates a Fiber v2 shaped adapter
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(l, opts...), nil
}

// GetLogger returns the underlying logger, creating it if needed
func (b *Builder) GetLogger() (*alog.Logger, error) {
	return b.getLogger()
}
