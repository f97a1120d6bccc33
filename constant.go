// FILE: lixenwraith/alog/constant.go
package alog

import (
	"time"
)

// Log level constants
const (
	LevelTrace    int64 = -8
	LevelDebug    int64 = -4
	LevelInfo     int64 = 0
	LevelWarning  int64 = 4
	LevelError    int64 = 8
	LevelCritical int64 = 12
	LevelOff      int64 = 16
)

// Overflow policies for a bounded queue
const (
	OverflowDropNewest = "drop_newest"
	OverflowDropOldest = "drop_oldest"
)

// Worker states
const (
	workerIdle int32 = iota
	workerRunning
	workerDraining
	workerStopped
)

// Queue and worker
const (
	// Default number of entries popped and written per batch
	defaultBatchSize = 128
	// Entries per queue segment
	segmentSize = 256
	// Timestamp layout of the txt wire format
	wireTimestampLayout = "2006-01-02 15:04:05.000"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
)
