package logging

import (
	"net"
	"time"

	"github.com/rs/zerolog"
)

// LogContext provides a fluent interface for building a child logger with
// pre-populated fields. Fields added through LogContext are included in all
// messages the resulting logger emits.
type LogContext interface {
	Str(key, val string) LogContext
	Strs(key string, vals []string) LogContext
	Int(key string, val int) LogContext
	Int64(key string, val int64) LogContext
	Uint(key string, val uint) LogContext
	Uint64(key string, val uint64) LogContext
	Float64(key string, val float64) LogContext
	Bool(key string, val bool) LogContext
	Time(key string, val time.Time) LogContext
	Err(err error) LogContext
	Interface(key string, val any) LogContext
	// Logger creates and returns the new context logger
	Logger() Logger
}

// LogEvent provides a fluent interface for structured logging with type-safe
// field methods. It wraps zerolog.Event behind the package's redaction and
// serialization pipeline. Every event must end in exactly one Msg, Msgf or
// Send call.
type LogEvent interface {
	Str(key, val string) LogEvent
	Strs(key string, vals []string) LogEvent
	Stringer(key string, val interface{ String() string }) LogEvent
	Int(key string, val int) LogEvent
	Int8(key string, val int8) LogEvent
	Int16(key string, val int16) LogEvent
	Int32(key string, val int32) LogEvent
	Int64(key string, val int64) LogEvent
	Uint(key string, val uint) LogEvent
	Uint8(key string, val uint8) LogEvent
	Uint16(key string, val uint16) LogEvent
	Uint32(key string, val uint32) LogEvent
	Uint64(key string, val uint64) LogEvent
	Float32(key string, val float32) LogEvent
	Float64(key string, val float64) LogEvent
	Bool(key string, val bool) LogEvent
	Bools(key string, vals []bool) LogEvent
	Time(key string, val time.Time) LogEvent
	Dur(key string, val time.Duration) LogEvent
	Err(err error) LogEvent
	AnErr(key string, err error) LogEvent
	Bytes(key string, val []byte) LogEvent
	Hex(key string, val []byte) LogEvent
	IPAddr(key string, val net.IP) LogEvent
	MACAddr(key string, val net.HardwareAddr) LogEvent
	Interface(key string, val any) LogEvent
	Fields(fields Fields) LogEvent
	Dict(key string, dict func(LogEvent)) LogEvent
	Msg(msg string)
	Msgf(format string, v ...any)
	Send()
}

// logEvent implements LogEvent by wrapping zerolog.Event. A nil event means
// the entry was filtered by the level gate and every call is a no-op. When
// fatal is set the terminal call exits the process after the write.
type logEvent struct {
	event *zerolog.Event
	rt    *runtime
	fatal bool
}

// newLogEvent creates a new LogEvent wrapper
func newLogEvent(e *zerolog.Event, rt *runtime) LogEvent {
	return &logEvent{event: e, rt: rt}
}

// newFatalEvent creates a LogEvent whose terminal call exits with status 1.
func newFatalEvent(e *zerolog.Event, rt *runtime) LogEvent {
	return &logEvent{event: e, rt: rt, fatal: true}
}

// redacted intercepts deny-listed field names before the value reaches the
// encoder. It reports true when the caller must not write the value itself.
func (e *logEvent) redacted(key string) bool {
	if e.rt == nil || !e.rt.redact.match(key) {
		return false
	}
	if !e.rt.redact.remove {
		e.event.Str(key, RedactedValue)
	}
	return true
}

func (e *logEvent) Str(key, val string) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Str(key, val)
	}
	return e
}

func (e *logEvent) Strs(key string, vals []string) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Strs(key, vals)
	}
	return e
}

func (e *logEvent) Stringer(key string, val interface{ String() string }) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Stringer(key, val)
	}
	return e
}

func (e *logEvent) Int(key string, val int) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Int(key, val)
	}
	return e
}

func (e *logEvent) Int8(key string, val int8) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Int8(key, val)
	}
	return e
}

func (e *logEvent) Int16(key string, val int16) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Int16(key, val)
	}
	return e
}

func (e *logEvent) Int32(key string, val int32) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Int32(key, val)
	}
	return e
}

func (e *logEvent) Int64(key string, val int64) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Int64(key, val)
	}
	return e
}

func (e *logEvent) Uint(key string, val uint) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Uint(key, val)
	}
	return e
}

func (e *logEvent) Uint8(key string, val uint8) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Uint8(key, val)
	}
	return e
}

func (e *logEvent) Uint16(key string, val uint16) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Uint16(key, val)
	}
	return e
}

func (e *logEvent) Uint32(key string, val uint32) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Uint32(key, val)
	}
	return e
}

func (e *logEvent) Uint64(key string, val uint64) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Uint64(key, val)
	}
	return e
}

func (e *logEvent) Float32(key string, val float32) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Float32(key, val)
	}
	return e
}

func (e *logEvent) Float64(key string, val float64) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Float64(key, val)
	}
	return e
}

func (e *logEvent) Bool(key string, val bool) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Bool(key, val)
	}
	return e
}

func (e *logEvent) Bools(key string, vals []bool) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Bools(key, vals)
	}
	return e
}

func (e *logEvent) Time(key string, val time.Time) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Time(key, val)
	}
	return e
}

func (e *logEvent) Dur(key string, val time.Duration) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Dur(key, val)
	}
	return e
}

// Err attaches err under the configured error key, serialized with the
// registered error serializer so the entry carries type, message, stack and
// the unwrap chain rather than a bare string.
func (e *logEvent) Err(err error) LogEvent {
	if e.event == nil || err == nil {
		return e
	}
	if e.rt == nil {
		e.event.Err(err)
		return e
	}
	return e.AnErr(e.rt.errorKey, err)
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	if e.event == nil || err == nil {
		return e
	}
	if e.redacted(key) {
		return e
	}
	if e.rt == nil {
		e.event.AnErr(key, err)
		return e
	}
	e.event.Interface(key, e.rt.serializeValue(key, err))
	return e
}

func (e *logEvent) Bytes(key string, val []byte) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Bytes(key, val)
	}
	return e
}

func (e *logEvent) Hex(key string, val []byte) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.Hex(key, val)
	}
	return e
}

func (e *logEvent) IPAddr(key string, val net.IP) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.IPAddr(key, val)
	}
	return e
}

func (e *logEvent) MACAddr(key string, val net.HardwareAddr) LogEvent {
	if e.event != nil && !e.redacted(key) {
		e.event.MACAddr(key, val)
	}
	return e
}

// Interface runs the registered serializer for key and recursive redaction
// over val before it reaches the JSON encoder.
func (e *logEvent) Interface(key string, val any) LogEvent {
	if e.event == nil || e.redacted(key) {
		return e
	}
	if e.rt != nil {
		val = e.rt.redact.maskValue(e.rt.serializeValue(key, val))
	}
	e.event.Interface(key, val)
	return e
}

// Fields merges a whole field map into the entry, applying serializers and
// redaction per key. This is the bulk path used for request payloads.
func (e *logEvent) Fields(fields Fields) LogEvent {
	if e.event == nil || len(fields) == 0 {
		return e
	}
	if e.rt != nil {
		e.event.Fields(e.rt.normalizeFields(fields))
		return e
	}
	e.event.Fields(map[string]any(fields))
	return e
}

// Dict for nested objects
func (e *logEvent) Dict(key string, dict func(LogEvent)) LogEvent {
	if e.event == nil || e.redacted(key) {
		return e
	}
	dictEvent := zerolog.Dict()
	dict(newLogEvent(dictEvent, e.rt))
	e.event.Dict(key, dictEvent)
	return e
}

func (e *logEvent) Msg(msg string) {
	if e.event != nil {
		e.event.Msg(msg)
	}
	e.exitIfFatal()
}

func (e *logEvent) Msgf(format string, v ...any) {
	if e.event != nil {
		e.event.Msgf(format, v...)
	}
	e.exitIfFatal()
}

func (e *logEvent) Send() {
	if e.event != nil {
		e.event.Send()
	}
	e.exitIfFatal()
}

func (e *logEvent) exitIfFatal() {
	if e.fatal {
		osExit(1)
	}
}

// logContext implements LogContext by wrapping zerolog.Context. The runtime
// is shared with the parent logger so children inherit its redaction set and
// serializer registry.
type logContext struct {
	context zerolog.Context
	rt      *runtime
}

func (c *logContext) redacted(key string) bool {
	if c.rt == nil || !c.rt.redact.match(key) {
		return false
	}
	if !c.rt.redact.remove {
		c.context = c.context.Str(key, RedactedValue)
	}
	return true
}

func (c *logContext) Str(key, val string) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Str(key, val)
	}
	return c
}

func (c *logContext) Strs(key string, vals []string) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Strs(key, vals)
	}
	return c
}

func (c *logContext) Int(key string, val int) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Int(key, val)
	}
	return c
}

func (c *logContext) Int64(key string, val int64) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Int64(key, val)
	}
	return c
}

func (c *logContext) Uint(key string, val uint) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Uint(key, val)
	}
	return c
}

func (c *logContext) Uint64(key string, val uint64) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Uint64(key, val)
	}
	return c
}

func (c *logContext) Float64(key string, val float64) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Float64(key, val)
	}
	return c
}

func (c *logContext) Bool(key string, val bool) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Bool(key, val)
	}
	return c
}

func (c *logContext) Time(key string, val time.Time) LogContext {
	if !c.redacted(key) {
		c.context = c.context.Time(key, val)
	}
	return c
}

func (c *logContext) Err(err error) LogContext {
	if err == nil {
		return c
	}
	if c.rt == nil {
		c.context = c.context.Err(err)
		return c
	}
	return c.Interface(c.rt.errorKey, err)
}

func (c *logContext) Interface(key string, val any) LogContext {
	if c.redacted(key) {
		return c
	}
	if c.rt != nil {
		val = c.rt.redact.maskValue(c.rt.serializeValue(key, val))
	}
	c.context = c.context.Interface(key, val)
	return c
}

func (c *logContext) Logger() Logger {
	return logger{zl: c.context.Logger(), rt: c.rt}
}

// noopLogContext is a no-op implementation of LogContext
type noopLogContext struct{}

func (n *noopLogContext) Str(key, val string) LogContext             { return n }
func (n *noopLogContext) Strs(key string, vals []string) LogContext  { return n }
func (n *noopLogContext) Int(key string, val int) LogContext         { return n }
func (n *noopLogContext) Int64(key string, val int64) LogContext     { return n }
func (n *noopLogContext) Uint(key string, val uint) LogContext       { return n }
func (n *noopLogContext) Uint64(key string, val uint64) LogContext   { return n }
func (n *noopLogContext) Float64(key string, val float64) LogContext { return n }
func (n *noopLogContext) Bool(key string, val bool) LogContext       { return n }
func (n *noopLogContext) Time(key string, val time.Time) LogContext  { return n }
func (n *noopLogContext) Err(err error) LogContext                   { return n }
func (n *noopLogContext) Interface(key string, val any) LogContext   { return n }
func (n *noopLogContext) Logger() Logger                             { return noopLogger{} }

// noopLogger discards everything, including fatal entries. Nop() hands it
// out for tests and for wiring code that runs before a real logger exists.
type noopLogger struct{}

func (noopLogger) TraceWith() LogEvent               { return newLogEvent(nil, nil) }
func (noopLogger) DebugWith() LogEvent               { return newLogEvent(nil, nil) }
func (noopLogger) InfoWith() LogEvent                { return newLogEvent(nil, nil) }
func (noopLogger) WarnWith() LogEvent                { return newLogEvent(nil, nil) }
func (noopLogger) ErrorWith() LogEvent               { return newLogEvent(nil, nil) }
func (noopLogger) FatalWith() LogEvent               { return newLogEvent(nil, nil) }
func (noopLogger) With() LogContext                  { return &noopLogContext{} }
func (noopLogger) WithContext(fields Fields) Logger  { return noopLogger{} }
func (noopLogger) Hook(hooks ...zerolog.Hook) Logger { return noopLogger{} }
