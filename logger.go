// FILE: lixenwraith/alog/logger.go
package alog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/alog/formatter"
)

// Logger is the core struct that encapsulates all logger functionality
type Logger struct {
	currentConfig atomic.Value // stores *Config
	cfgMu         sync.Mutex   // Serializes config read-modify-write, never held across I/O
	state         State
	initMu        sync.Mutex

	gate      *levelGate
	queue     *queue
	metrics   metrics
	sinks     *sinkSet
	formatter atomic.Pointer[formatter.Formatter]
	batchSize atomic.Int64
	progress  *progress

	stopChan     chan struct{}
	doneChan     chan struct{}
	shutdownOnce sync.Once
}

// NewLogger creates a new Logger instance with default settings.
// The worker is not running until Start; submissions made before are queued.
func NewLogger() *Logger {
	cfg := DefaultConfig()

	l := &Logger{
		gate:     newLevelGate(cfg.Level),
		queue:    newQueue(cfg.QueueCapacity, cfg.OverflowPolicy),
		sinks:    newSinkSet(),
		progress: newProgress(),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	l.state.WorkerState.Store(workerIdle)
	l.state.HeartbeatSequence.Store(0)
	l.state.LoggerStartTime.Store(time.Now())
	l.state.DiagnosticWriter.Store(&writerBox{w: os.Stderr})

	l.applyRuntimeConfig(replaceConfig(cfg))

	return l
}

// ApplyConfig applies a validated configuration to the logger.
// Safe to call while running; everything except heartbeat_interval_ms takes effect immediately.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil: %w", ErrConfiguration)
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	newCfg := cfg.Clone()
	return l.applyConfig(newCfg, replaceConfig(newCfg))
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// SetLevel replaces the minimum admitted level for subsequent submissions.
// It never waits on configuration changes, file opening or Shutdown.
func (l *Logger) SetLevel(level int64) {
	l.gate.set(level)
	l.updateConfig(func(c *Config) { c.Level = level })
}

// Level returns the current minimum admitted level
func (l *Logger) Level() int64 {
	return l.gate.get()
}

// EnableConsole toggles the console sink
func (l *Logger) EnableConsole(enabled bool) {
	// The console slot always holds a writer, enable only fails after Shutdown
	_ = l.sinks.enable(consoleSinkName, enabled)
	l.updateConfig(func(c *Config) { c.EnableConsole = enabled })
}

// SetFileOutput closes any current log file and starts appending to path.
// On failure the file output stays disabled and an ErrConfiguration error is returned.
func (l *Logger) SetFileOutput(path string) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot set file output: %w", ErrShutdown)
	}

	cfg := l.getConfig().Clone()
	cfg.FilePath = path

	if err := l.installFileSink(cfg); err != nil {
		l.updateConfig(func(c *Config) { c.FilePath = "" })
		return err
	}

	l.updateConfig(func(c *Config) { c.FilePath = path })
	return nil
}

// DisableFileOutput closes the current log file, if any
func (l *Logger) DisableFileOutput() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	err := l.closeFileSink()
	l.updateConfig(func(c *Config) { c.FilePath = "" })
	return err
}

// SetDiagnosticWriter redirects internal diagnostics, nil discards them
func (l *Logger) SetDiagnosticWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.state.DiagnosticWriter.Store(&writerBox{w: w})
}

// Start launches the worker. It can be called once; a stopped logger cannot be restarted.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot start: %w", ErrShutdown)
	}

	if !l.state.Started.CompareAndSwap(false, true) {
		return fmtErrorf("cannot start: %w", ErrAlreadyStarted)
	}

	cfg := l.getConfig()
	heartbeatInterval := time.Duration(cfg.HeartbeatIntervalMs) * time.Millisecond

	l.state.LoggerStartTime.Store(time.Now())
	l.state.WorkerState.Store(workerRunning)

	go l.processLogs(heartbeatInterval)

	return nil
}

// Shutdown stops the worker after it has written every queued entry, then closes all sinks.
// It waits as long as draining takes. Only the first call does any work and reports errors,
// concurrent calls block until it completes, later calls return nil.
func (l *Logger) Shutdown() error {
	var finalErr error
	l.shutdownOnce.Do(func() {
		finalErr = l.shutdown()
	})
	return finalErr
}

// shutdown performs the single shutdown sequence
func (l *Logger) shutdown() error {
	l.initMu.Lock()
	l.state.ShutdownCalled.Store(true)
	started := l.state.Started.Load()
	if started {
		close(l.stopChan)
	} else {
		l.state.WorkerState.Store(workerStopped)
	}
	l.initMu.Unlock()

	// The drain runs without initMu, configuration calls fail fast on ShutdownCalled meanwhile
	if started {
		<-l.doneChan
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	finalErr := l.sinks.closeAll()

	if l.getConfig().ShutdownSummary {
		s := l.Stats()
		l.internalLog("shutdown summary: submitted=%d filtered=%d processed=%d dropped=%d pending=%d avg_processing_ms=%.4f\n",
			s.Submitted, s.Filtered, s.Processed, s.Dropped, s.Pending, s.AvgProcessingTimeMs)
	}

	return finalErr
}

// Flush waits until every entry submitted before the call has been written or evicted,
// then syncs sinks that support it.
func (l *Logger) Flush(timeout time.Duration) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot flush: %w", ErrShutdown)
	}
	if !l.state.Started.Load() {
		return fmtErrorf("cannot flush: %w", ErrNotStarted)
	}

	target := l.queue.pushed()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		// Take the channel before checking so a batch completing in between is not missed
		progressCh := l.progress.wait()

		if l.metrics.processed.Load()+l.queue.evicted() >= target {
			break
		}
		if l.state.WorkerState.Load() == workerStopped {
			return fmtErrorf("worker stopped before flush completed: %w", ErrShutdown)
		}

		select {
		case <-progressCh:
		case <-timer.C:
			return fmtErrorf("timeout waiting for flush (%v)", timeout)
		}
	}

	return l.sinks.sync()
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// configMerge derives the configuration to store from the current one
type configMerge func(current *Config) *Config

// replaceConfig stores cfg as is, discarding the current configuration
func replaceConfig(cfg *Config) configMerge {
	return func(*Config) *Config { return cfg }
}

// updateConfig stores a modified copy of the current configuration
func (l *Logger) updateConfig(modify func(*Config)) {
	l.cfgMu.Lock()
	defer l.cfgMu.Unlock()

	cfg := l.getConfig().Clone()
	modify(cfg)
	l.gate.set(cfg.Level) // Keep the gate and the stored level together
	l.currentConfig.Store(cfg)
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held.
// cfg decides the file output; merge produces the stored configuration.
func (l *Logger) applyConfig(cfg *Config, merge configMerge) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot apply configuration: %w", ErrShutdown)
	}

	oldCfg := l.getConfig()

	if fileConfigChanged(oldCfg, cfg) {
		var err error
		if cfg.FilePath == "" {
			err = l.closeFileSink()
		} else {
			err = l.installFileSink(cfg)
		}
		if err != nil {
			// The previous file is already closed, record it as disabled
			l.updateConfig(func(c *Config) { c.FilePath = "" })
			return err
		}
	}

	l.applyRuntimeConfig(merge)
	return nil
}

// applyRuntimeConfig stores the merged configuration and applies everything except file output
func (l *Logger) applyRuntimeConfig(merge configMerge) {
	l.cfgMu.Lock()
	current, _ := l.currentConfig.Load().(*Config)
	cfg := merge(current)
	l.gate.set(cfg.Level)
	l.currentConfig.Store(cfg)
	l.cfgMu.Unlock()

	var consoleWriter io.Writer = os.Stdout
	if cfg.ConsoleTarget == "stderr" {
		consoleWriter = os.Stderr
	}
	l.sinks.replace(consoleSinkName, NewWriterSink(consoleWriter), cfg.EnableConsole)

	f := formatter.New().
		Type(cfg.Format).
		TimestampFormat(wireTimestampLayout).
		Sanitize(cfg.Sanitize)
	l.formatter.Store(f)

	l.batchSize.Store(cfg.BatchSize)
	l.queue.setLimits(cfg.QueueCapacity, cfg.OverflowPolicy)
}

// installFileSink replaces the file sink with one opened from cfg.
// The previous file is closed first so a lock on the same path can be re-acquired.
func (l *Logger) installFileSink(cfg *Config) error {
	if err := l.closeFileSink(); err != nil {
		l.internalLog("warning - failed to close previous log file: %v\n", err)
	}

	sink, err := openFileSink(cfg)
	if err != nil {
		return err
	}

	l.sinks.replace(fileSinkName, sink, true)
	return nil
}

// closeFileSink empties the file slot and closes its sink
func (l *Logger) closeFileSink() error {
	old := l.sinks.replace(fileSinkName, nil, false)
	return closeSink(old)
}

// fileConfigChanged reports whether the file sink must be reopened
func fileConfigChanged(oldCfg, newCfg *Config) bool {
	return oldCfg.FilePath != newCfg.FilePath ||
		oldCfg.FileLock != newCfg.FileLock ||
		oldCfg.MaxSizeMB != newCfg.MaxSizeMB ||
		oldCfg.MaxBackups != newCfg.MaxBackups ||
		oldCfg.MaxAgeDays != newCfg.MaxAgeDays ||
		oldCfg.Compress != newCfg.Compress
}
