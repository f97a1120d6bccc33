// FILE: lixenwraith/alog/storage.go
package alog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink appends lines to a file. Each line is one unbuffered write, so nothing
// is held in user space between writes.
type FileSink struct {
	file *os.File
	lock *flock.Flock
}

// NewFileSink opens path in append mode, creating it and its parent directories.
// With lock set, an exclusive advisory lock on "<path>.lock" is required to succeed.
func NewFileSink(path string, lock bool) (*FileSink, error) {
	if err := prepareLogPath(path); err != nil {
		return nil, err
	}

	fl, err := acquireFileLock(path, lock)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		releaseFileLock(fl)
		return nil, fmtErrorf("failed to open log file '%s': %w: %w", path, ErrConfiguration, err)
	}

	return &FileSink{file: file, lock: fl}, nil
}

// WriteLine appends a line
func (s *FileSink) WriteLine(line []byte) error {
	_, err := s.file.Write(line)
	return err
}

// Path returns the file name
func (s *FileSink) Path() string {
	return s.file.Name()
}

// Sync commits the file to stable storage
func (s *FileSink) Sync() error {
	return s.file.Sync()
}

// Close syncs and closes the file and releases the lock
func (s *FileSink) Close() error {
	var finalErr error
	if err := s.file.Sync(); err != nil {
		finalErr = fmtErrorf("failed to sync log file '%s': %w", s.file.Name(), err)
	}
	if err := s.file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", s.file.Name(), err))
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to release lock on '%s': %w", s.lock.Path(), err))
		}
	}
	return finalErr
}

// RotatingFileSink appends lines to a file that is rotated by size
type RotatingFileSink struct {
	out  *lumberjack.Logger
	lock *flock.Flock
}

// NewRotatingFileSink opens path for appending with size based rotation.
// maxSizeMB must be positive; maxBackups and maxAgeDays of 0 keep every rotated file.
func NewRotatingFileSink(path string, maxSizeMB, maxBackups, maxAgeDays int64, compress, lock bool) (*RotatingFileSink, error) {
	if maxSizeMB <= 0 {
		return nil, fmtErrorf("max_size_mb must be positive for a rotating file: %w", ErrConfiguration)
	}
	if err := prepareLogPath(path); err != nil {
		return nil, err
	}

	fl, err := acquireFileLock(path, lock)
	if err != nil {
		return nil, err
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    int(maxSizeMB),
		MaxBackups: int(maxBackups),
		MaxAge:     int(maxAgeDays),
		Compress:   compress,
		LocalTime:  true,
	}

	// lumberjack opens lazily, an empty write surfaces open errors at configuration time
	if _, err := out.Write(nil); err != nil {
		releaseFileLock(fl)
		return nil, fmtErrorf("failed to open log file '%s': %w: %w", path, ErrConfiguration, err)
	}

	return &RotatingFileSink{out: out, lock: fl}, nil
}

// WriteLine appends a line, rotating first if it would exceed the size limit
func (s *RotatingFileSink) WriteLine(line []byte) error {
	_, err := s.out.Write(line)
	return err
}

// Rotate forces a rotation to a new file
func (s *RotatingFileSink) Rotate() error {
	return s.out.Rotate()
}

// Close closes the current file and releases the lock
func (s *RotatingFileSink) Close() error {
	var finalErr error
	if err := s.out.Close(); err != nil {
		finalErr = fmtErrorf("failed to close log file '%s': %w", s.out.Filename, err)
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to release lock on '%s': %w", s.lock.Path(), err))
		}
	}
	return finalErr
}

// openFileSink builds the file sink described by cfg
func openFileSink(cfg *Config) (Sink, error) {
	if cfg.MaxSizeMB > 0 {
		return NewRotatingFileSink(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays, cfg.Compress, cfg.FileLock)
	}
	return NewFileSink(cfg.FilePath, cfg.FileLock)
}

// prepareLogPath validates path and creates its directory
func prepareLogPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmtErrorf("log file path cannot be empty: %w", ErrConfiguration)
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return fmtErrorf("log file path '%s' names a directory: %w", path, ErrConfiguration)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w: %w", dir, ErrConfiguration, err)
	}
	return nil
}

// acquireFileLock takes the sidecar lock of path when enabled
func acquireFileLock(path string, enabled bool) (*flock.Flock, error) {
	if !enabled {
		return nil, nil
	}
	fl := flock.New(path + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmtErrorf("failed to lock log file '%s': %w: %w", path, ErrConfiguration, err)
	}
	if !locked {
		return nil, fmtErrorf("log file '%s' is locked by another writer: %w", path, ErrConfiguration)
	}
	return fl, nil
}

// releaseFileLock unlocks fl if held
func releaseFileLock(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}
