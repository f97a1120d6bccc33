// FILE: lixenwraith/alog/errors.go
package alog

import "errors"

var (
	// ErrConfiguration marks invalid configuration values and sink setup failures
	ErrConfiguration = errors.New("configuration error")
	// ErrAlreadyStarted is returned by a second Start call
	ErrAlreadyStarted = errors.New("logger already started")
	// ErrNotStarted is returned by operations that need a running worker
	ErrNotStarted = errors.New("logger not started")
	// ErrShutdown is returned by operations attempted after Shutdown
	ErrShutdown = errors.New("logger shut down")
)
