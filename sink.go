// FILE: lixenwraith/alog/sink.go
package alog

import (
	"io"
	"sync"
)

// Reserved sink names
const (
	consoleSinkName = "console"
	fileSinkName    = "file"
)

// Sink is a destination for formatted log lines.
// The line slice is only valid for the duration of the call and must not be retained.
// A sink that also implements io.Closer is closed on Shutdown or replacement.
type Sink interface {
	WriteLine(line []byte) error
}

// syncer is implemented by sinks that can push written data to stable storage
type syncer interface {
	Sync() error
}

// WriterSink adapts an io.Writer, the console sink uses os.Stdout or os.Stderr
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink writing each line to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes a single line
func (s *WriterSink) WriteLine(line []byte) error {
	_, err := s.w.Write(line)
	return err
}

// SinkInfo describes one entry of the sink set
type SinkInfo struct {
	Name    string
	Enabled bool
	Errors  uint64 // Failed writes since the sink was installed
}

// sinkSlot is a named position in the sink set
type sinkSlot struct {
	name    string
	sink    Sink
	enabled bool
	errors  uint64
}

// sinkSet is the ordered list of outputs.
// Configuration changes and worker writes share mu, so a change never lands mid-write.
type sinkSet struct {
	mu     sync.Mutex
	slots  []*sinkSlot
	closed bool // Set by closeAll, no sink can be added or enabled afterwards
}

// newSinkSet creates the set with the console and file slots in fixed order
func newSinkSet() *sinkSet {
	return &sinkSet{
		slots: []*sinkSlot{
			{name: consoleSinkName},
			{name: fileSinkName},
		},
	}
}

// findLocked returns the named slot, s.mu must be held
func (s *sinkSet) findLocked(name string) *sinkSlot {
	for _, slot := range s.slots {
		if slot.name == name {
			return slot
		}
	}
	return nil
}

// replace installs sink in the named slot and returns the previous sink
func (s *sinkSet) replace(name string, sink Sink, enabled bool) Sink {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := s.findLocked(name)
	if slot == nil {
		slot = &sinkSlot{name: name}
		s.slots = append(s.slots, slot)
	}
	old := slot.sink
	slot.sink = sink
	slot.enabled = enabled && sink != nil
	slot.errors = 0
	return old
}

// add appends a new named sink, names must be unique
func (s *sinkSet) add(name string, sink Sink) error {
	if name == "" || sink == nil {
		return fmtErrorf("sink name and sink must be set: %w", ErrConfiguration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmtErrorf("cannot add sink '%s': %w", name, ErrShutdown)
	}
	if s.findLocked(name) != nil {
		return fmtErrorf("sink '%s' already exists: %w", name, ErrConfiguration)
	}
	s.slots = append(s.slots, &sinkSlot{name: name, sink: sink, enabled: true})
	return nil
}

// enable toggles a sink, a slot without an installed sink cannot be enabled
func (s *sinkSet) enable(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmtErrorf("cannot enable sink '%s': %w", name, ErrShutdown)
	}
	slot := s.findLocked(name)
	if slot == nil {
		return fmtErrorf("unknown sink '%s': %w", name, ErrConfiguration)
	}
	if enabled && slot.sink == nil {
		return fmtErrorf("sink '%s' has no output configured: %w", name, ErrConfiguration)
	}
	slot.enabled = enabled
	return nil
}

// writeLine writes line to every enabled sink in order.
// A failing sink is counted and reported through onError, the remaining sinks still get the line.
func (s *sinkSet) writeLine(line []byte, onError func(name string, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range s.slots {
		if !slot.enabled {
			continue
		}
		if err := slot.sink.WriteLine(line); err != nil {
			slot.errors++
			if onError != nil {
				onError(slot.name, err)
			}
		}
	}
}

// sync pushes buffered data of enabled sinks to storage
func (s *sinkSet) sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var finalErr error
	for _, slot := range s.slots {
		if !slot.enabled {
			continue
		}
		if sy, ok := slot.sink.(syncer); ok {
			if err := sy.Sync(); err != nil {
				finalErr = combineErrors(finalErr, fmtErrorf("failed to sync sink '%s': %w", slot.name, err))
			}
		}
	}
	return finalErr
}

// status returns a snapshot of every slot
func (s *sinkSet) status() []SinkInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]SinkInfo, 0, len(s.slots))
	for _, slot := range s.slots {
		infos = append(infos, SinkInfo{Name: slot.name, Enabled: slot.enabled, Errors: slot.errors})
	}
	return infos
}

// closeAll disables every slot, closes sinks that own resources and seals the set
func (s *sinkSet) closeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	var finalErr error
	for _, slot := range s.slots {
		slot.enabled = false
		if err := closeSink(slot.sink); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to close sink '%s': %w", slot.name, err))
		}
		slot.sink = nil
	}
	return finalErr
}

// closeSink closes sink if it implements io.Closer
func closeSink(sink Sink) error {
	if c, ok := sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// AddSink appends a custom sink after the console and file slots, enabled
func (l *Logger) AddSink(name string, sink Sink) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot add sink '%s': %w", name, ErrShutdown)
	}
	return l.sinks.add(name, sink)
}

// EnableSink enables or disables a sink by name ("console", "file" or a custom name)
func (l *Logger) EnableSink(name string, enabled bool) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot change sink '%s': %w", name, ErrShutdown)
	}
	return l.sinks.enable(name, enabled)
}

// SinkStatus returns the sink set in write order
func (l *Logger) SinkStatus() []SinkInfo {
	return l.sinks.status()
}
