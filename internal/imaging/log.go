package imaging

import "log"

// Logf is the package diagnostic logger. It is muted until the caller opts in
// with SetLogger, since stdout may carry protocol traffic.
var Logf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// EnableDebugLogging routes package diagnostics to the standard logger.
func EnableDebugLogging() {
	SetLogger(log.Printf)
}
