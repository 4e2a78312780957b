package engine

import "sync/atomic"

// debugLoggingEnabled guards per-dispatch debug lines in the hot loop.
// Set via EnableDebugLogging() during initialization based on config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the engine.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard expensive debug log calls:
//
//	if engine.IsDebugEnabled() {
//	    slog.Debug("joker evaluated", "effect", e.Describe())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
