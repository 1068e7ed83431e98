package logging

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// logger is the concrete Logger. It pairs an immutable zerolog.Logger with
// the field pipeline built at construction time. Values are cheap to copy;
// child loggers share the runtime and never touch their parent.
type logger struct {
	zl zerolog.Logger
	rt *runtime
}

// New builds a Logger from opts merged over DefaultOptions. A nil opts
// yields the stock logger: JSON records to stdout at info level (or the
// LOG_LEVEL override), timestamps on, the default redaction set, and
// SerializeError registered for the error key.
func New(opts *Options) (Logger, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	merged := opts.withDefaults()

	if err := validateOptions(merged); err != nil {
		return nil, err
	}

	level, err := resolveLevel(merged.Level)
	if err != nil {
		return nil, err
	}

	writer, err := buildWriter(merged)
	if err != nil {
		return nil, err
	}

	// These two rewire zerolog package state, so they apply to every logger
	// in the process. Last constructed wins.
	if merged.MessageKey != emptyString {
		zerolog.MessageFieldName = merged.MessageKey
	}
	if merged.LevelFormatter != nil {
		zerolog.LevelFieldMarshalFunc = merged.LevelFormatter
	}

	rt := newRuntime(merged)

	ctx := zerolog.New(writer).Level(level).With()
	if !merged.DisableTimestamp {
		ctx = ctx.Timestamp()
	}
	if len(merged.Base) > 0 {
		ctx = ctx.Fields(rt.normalizeFields(merged.Base))
	}

	return logger{zl: ctx.Logger(), rt: rt}, nil
}

func (l logger) TraceWith() LogEvent { return buildLevelEvent(l, zerolog.TraceLevel) }
func (l logger) DebugWith() LogEvent { return buildLevelEvent(l, zerolog.DebugLevel) }
func (l logger) InfoWith() LogEvent  { return buildLevelEvent(l, zerolog.InfoLevel) }
func (l logger) WarnWith() LogEvent  { return buildLevelEvent(l, zerolog.WarnLevel) }
func (l logger) ErrorWith() LogEvent { return buildLevelEvent(l, zerolog.ErrorLevel) }

// FatalWith writes at fatal severity and terminates the process with a
// non-zero status once the terminal call has flushed the entry.
func (l logger) FatalWith() LogEvent {
	return newFatalEvent(l.zl.WithLevel(zerolog.FatalLevel), l.rt)
}

// With returns a fluent builder for a child logger sharing this logger's
// level, sinks and field pipeline.
func (l logger) With() LogContext {
	return &logContext{context: l.zl.With(), rt: l.rt}
}

// WithContext returns a child logger with fields bound to every entry it
// emits. The receiver is unchanged; composing twice merges both field sets
// with later keys shadowing earlier ones in the output.
func (l logger) WithContext(fields Fields) Logger {
	if len(fields) == 0 {
		return l
	}
	ctx := l.zl.With().Fields(l.rt.normalizeFields(fields))
	return logger{zl: ctx.Logger(), rt: l.rt}
}

// Hook returns a child logger that runs the given zerolog hooks on every
// entry. The receiver keeps its hook set.
func (l logger) Hook(hooks ...zerolog.Hook) Logger {
	return logger{zl: l.zl.Hook(hooks...), rt: l.rt}
}

// Nop returns a Logger that discards everything. Its FatalWith does not
// terminate the process.
func Nop() Logger { return noopLogger{} }

// defaultLogger holds the process-wide Logger handed out by Default. Built
// lazily so importing the package has no side effects.
var defaultLogger atomic.Pointer[Logger]

// Default returns the process-wide Logger, constructing one from
// DefaultOptions on first use.
func Default() Logger {
	if l := defaultLogger.Load(); l != nil {
		return *l
	}
	built, err := New(nil)
	if err != nil {
		// Defaults always validate, so this is unreachable short of a
		// broken environment. Degrade to a no-op rather than panic.
		built = Nop()
	}
	defaultLogger.CompareAndSwap(nil, &built)
	return *defaultLogger.Load()
}

// SetDefault replaces the Logger returned by Default. Nil is ignored.
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(&l)
}
