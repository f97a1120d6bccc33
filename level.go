// FILE: lixenwraith/alog/level.go
package alog

import "sync/atomic"

// levelGate holds the minimum admitted severity
type levelGate struct {
	threshold atomic.Int64
}

func newLevelGate(level int64) *levelGate {
	g := &levelGate{}
	g.threshold.Store(level)
	return g
}

// set replaces the threshold for subsequent submissions
func (g *levelGate) set(level int64) {
	g.threshold.Store(level)
}

// get returns the current threshold
func (g *levelGate) get() int64 {
	return g.threshold.Load()
}

// admits reports whether an entry at level passes the threshold.
// LevelOff is a threshold only, entries at or above it are never admitted.
func (g *levelGate) admits(level int64) bool {
	return level < LevelOff && level >= g.threshold.Load()
}
