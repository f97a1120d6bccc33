// FILE: lixenwraith/alog/state.go
package alog

import (
	"sync"
	"sync/atomic"
)

// State encapsulates the runtime state of the logger
type State struct {
	Started        atomic.Bool
	ShutdownCalled atomic.Bool
	WorkerState    atomic.Int32 // workerIdle, workerRunning, workerDraining, workerStopped

	DiagnosticWriter atomic.Value // stores *writerBox

	// Heartbeat statistics
	HeartbeatSequence atomic.Uint64
	LoggerStartTime   atomic.Value // stores time.Time for uptime calculation
}

// progress lets waiters block until the worker completes its next batch
type progress struct {
	mu sync.Mutex
	ch chan struct{}
}

func newProgress() *progress {
	return &progress{ch: make(chan struct{})}
}

// wait returns a channel closed by the next broadcast
func (p *progress) wait() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch
}

// broadcast wakes every current waiter
func (p *progress) broadcast() {
	p.mu.Lock()
	close(p.ch)
	p.ch = make(chan struct{})
	p.mu.Unlock()
}

// WorkerState reports the worker lifecycle phase: idle, running, draining or stopped
func (l *Logger) WorkerState() string {
	switch l.state.WorkerState.Load() {
	case workerRunning:
		return "running"
	case workerDraining:
		return "draining"
	case workerStopped:
		return "stopped"
	default:
		return "idle"
	}
}
