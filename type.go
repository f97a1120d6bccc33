// FILE: lixenwraith/alog/type.go
package alog

import (
	"io"
	"time"
)

// logEntry represents a single admitted submission
type logEntry struct {
	Level     int64
	Message   string
	TimeStamp time.Time
}

// writerBox is a wrapper around an io.Writer, atomic value type change workaround
type writerBox struct {
	w io.Writer
}
