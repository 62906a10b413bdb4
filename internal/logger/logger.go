// Package logger provides the gateway's process-wide zap logger and the gin
// access-log middleware that tags every request with an id.
package logger

import (
	"sync"
)

// Values accepted for log.level (AUTHGATE_LOG_LEVEL). Anything else logs at info.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	processLogger *Logger
	processOnce   sync.Once
)

// Get returns the process logger, creating it at level on first use.
// main calls it with log.level once configuration is loaded (info when loading
// fails). Later levels are ignored.
// Handlers and tests that want an isolated logger use New or NewWithWriter.
func Get(level string) *Logger {
	processOnce.Do(func() {
		processLogger = New(level)
	})
	return processLogger
}
