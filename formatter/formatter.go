// FILE: lixenwraith/alog/formatter/formatter.go

// Package formatter renders log entries into single output lines.
package formatter

import (
	"time"

	"github.com/lixenwraith/alog/sanitizer"
)

// Output formats
const (
	FormatTxt  = "txt"
	FormatJSON = "json"
)

// DefaultTimestampFormat is the millisecond precision local time layout of the txt format
const DefaultTimestampFormat = "2006-01-02 15:04:05.000"

// Formatter manages the buffered formatting of log entries.
// The returned line is reused by the next call, a Formatter is not safe for concurrent use.
type Formatter struct {
	txtSanitizer    *sanitizer.Sanitizer // nil = message written verbatim
	jsonSanitizer   *sanitizer.Sanitizer
	format          string
	timestampFormat string
	buf             []byte
}

// New creates a txt formatter that writes messages verbatim
func New() *Formatter {
	return &Formatter{
		jsonSanitizer:   sanitizer.New().Policy(sanitizer.PolicyJSON),
		format:          FormatTxt,
		timestampFormat: DefaultTimestampFormat,
		buf:             make([]byte, 0, 1024),
	}
}

// Type sets the output format ("txt" or "json")
func (f *Formatter) Type(format string) *Formatter {
	f.format = format
	return f
}

// TimestampFormat sets the timestamp layout
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// Sanitize sets whether txt messages have non-printable characters hex encoded.
// JSON output is always escaped.
func (f *Formatter) Sanitize(enabled bool) *Formatter {
	if enabled {
		f.txtSanitizer = sanitizer.New().Policy(sanitizer.PolicyTxt)
	} else {
		f.txtSanitizer = nil
	}
	return f
}

// Format renders one entry, terminated by a newline. The timestamp is shown in local time.
func (f *Formatter) Format(timestamp time.Time, level string, message string) []byte {
	f.buf = f.buf[:0]
	timestamp = timestamp.Local()

	if f.format == FormatJSON {
		return f.formatJSON(timestamp, level, message)
	}
	return f.formatTxt(timestamp, level, message)
}

// formatTxt produces "[<timestamp>] [<LEVEL>] <message>\n"
func (f *Formatter) formatTxt(timestamp time.Time, level string, message string) []byte {
	f.buf = append(f.buf, '[')
	f.buf = timestamp.AppendFormat(f.buf, f.timestampFormat)
	f.buf = append(f.buf, "] ["...)
	f.buf = append(f.buf, level...)
	f.buf = append(f.buf, "] "...)

	if f.txtSanitizer != nil {
		f.buf = f.txtSanitizer.Append(f.buf, message)
	} else {
		f.buf = append(f.buf, message...)
	}

	f.buf = append(f.buf, '\n')
	return f.buf
}

// formatJSON produces {"time":...,"level":...,"message":...}\n
func (f *Formatter) formatJSON(timestamp time.Time, level string, message string) []byte {
	f.buf = append(f.buf, `{"time":"`...)
	f.buf = timestamp.AppendFormat(f.buf, f.timestampFormat)
	f.buf = append(f.buf, `","level":"`...)
	f.buf = append(f.buf, level...)
	f.buf = append(f.buf, `","message":"`...)
	f.buf = f.jsonSanitizer.Append(f.buf, message)
	f.buf = append(f.buf, '"', '}', '\n')
	return f.buf
}
