// FILE: lixenwraith/alog/builder.go
package alog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a configured Logger. The returned logger is not started.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Config returns a copy of the configuration built so far
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Level sets the minimum admitted level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the minimum admitted level from its name.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// EnableConsole sets whether lines are mirrored to the console.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget sets the console stream, "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// FilePath sets the log file, empty disables file output.
func (b *Builder) FilePath(path string) *Builder {
	b.cfg.FilePath = path
	return b
}

// FileLock sets whether the log file is guarded by an inter-process lock.
func (b *Builder) FileLock(lock bool) *Builder {
	b.cfg.FileLock = lock
	return b
}

// Rotation enables size based rotation of the log file.
func (b *Builder) Rotation(maxSizeMB, maxBackups, maxAgeDays int64, compress bool) *Builder {
	b.cfg.MaxSizeMB = maxSizeMB
	b.cfg.MaxBackups = maxBackups
	b.cfg.MaxAgeDays = maxAgeDays
	b.cfg.Compress = compress
	return b
}

// Format sets the output format.
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// Sanitize sets whether non-printable characters are hex encoded in txt output.
func (b *Builder) Sanitize(sanitize bool) *Builder {
	b.cfg.Sanitize = sanitize
	return b
}

// BatchSize sets the maximum number of entries written per worker batch.
func (b *Builder) BatchSize(size int64) *Builder {
	b.cfg.BatchSize = size
	return b
}

// QueueCapacity bounds the queue, 0 is unbounded.
func (b *Builder) QueueCapacity(capacity int64) *Builder {
	b.cfg.QueueCapacity = capacity
	return b
}

// OverflowPolicy sets what a full bounded queue drops.
func (b *Builder) OverflowPolicy(policy string) *Builder {
	b.cfg.OverflowPolicy = policy
	return b
}

// HeartbeatIntervalMs sets the heartbeat period, 0 disables it.
func (b *Builder) HeartbeatIntervalMs(interval int64) *Builder {
	b.cfg.HeartbeatIntervalMs = interval
	return b
}

// InternalErrorsToStderr sets whether internal diagnostics are written.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// ShutdownSummary sets whether Shutdown reports final metrics through diagnostics.
func (b *Builder) ShutdownSummary(enable bool) *Builder {
	b.cfg.ShutdownSummary = enable
	return b
}
