package logging

import "github.com/rs/zerolog"

// Logger is the structured logging interface. All entry points return a
// LogEvent builder; entries below the logger's minimum level return a no-op
// builder so disabled calls cost almost nothing.
type Logger interface {
	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent

	// FatalWith returns an event whose Msg, Msgf and Send terminate the
	// process after the entry is written.
	FatalWith() LogEvent

	// With returns a fluent builder for a child logger.
	// Example: reqLogger := logger.With().Str(KeyRequestID, id).Logger()
	With() LogContext

	// WithContext returns a child logger with fields bound to every entry
	// it emits. The receiver is never modified; repeated keys in later
	// calls shadow earlier ones in the output.
	WithContext(fields Fields) Logger

	// Hook returns a child logger that runs the given zerolog hooks on
	// every entry.
	Hook(hooks ...zerolog.Hook) Logger
}
