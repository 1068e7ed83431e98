package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// resolveLevel maps a level name to its zerolog.Level. An empty name falls
// back to the LOG_LEVEL environment variable when it holds a recognized
// name, then to info.
func resolveLevel(name string) (zerolog.Level, error) {
	if name == emptyString {
		name = levelFromEnv()
	}
	if name == emptyString {
		name = defaultLevelName
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%s %q: %w", errMsgInvalidLevel, name, err)
	}
	return level, nil
}

// levelFromEnv returns the LOG_LEVEL value when it names one of the six
// recognized levels, empty otherwise. Garbage in the environment must not
// break logger construction.
func levelFromEnv() string {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel)))
	switch value {
	case "trace", "debug", "info", "warn", "error", "fatal":
		return value
	}
	return emptyString
}

// runtime carries the per-logger field pipeline: redaction, the error key
// and the serializer registry. It is built once in New, shared by every
// child logger and event, and never mutated afterwards.
type runtime struct {
	redact      redactor
	errorKey    string
	serializers map[string]SerializerFunc
}

func newRuntime(opts *Options) *runtime {
	rt := &runtime{
		redact: redactor{
			set:    newRedactSet(opts.Redact.Paths),
			remove: opts.Redact.Remove,
		},
		errorKey: opts.ErrorKey,
	}
	rt.serializers = make(map[string]SerializerFunc, len(opts.Serializers)+1)
	rt.serializers[rt.errorKey] = func(value any) any { return SerializeError(value) }
	for key, fn := range opts.Serializers {
		if fn == nil {
			continue
		}
		rt.serializers[key] = fn
	}
	return rt
}

// buildLevelEvent creates an event for the given level. Entries below the
// logger's minimum level return a no-op event without touching zerolog, so
// disabled calls build nothing and serialize nothing.
func buildLevelEvent(l logger, level zerolog.Level) LogEvent {
	if level == zerolog.NoLevel || l.zl.GetLevel() > level {
		return newLogEvent(nil, l.rt)
	}

	var event *zerolog.Event
	switch level {
	case zerolog.TraceLevel:
		event = l.zl.Trace()
	case zerolog.DebugLevel:
		event = l.zl.Debug()
	case zerolog.InfoLevel:
		event = l.zl.Info()
	case zerolog.WarnLevel:
		event = l.zl.Warn()
	case zerolog.ErrorLevel:
		event = l.zl.Error()
	default:
		return newLogEvent(nil, l.rt)
	}

	return newLogEvent(event, l.rt)
}

// serializeValue runs the registered serializer for key. Plain error values
// without a registered serializer still go through SerializeError so they
// never reach the JSON encoder raw.
func (rt *runtime) serializeValue(key string, value any) any {
	if fn, found := rt.serializers[key]; found {
		return fn(value)
	}
	if err, ok := value.(error); ok && !isNilValue(err) {
		return SerializeError(err)
	}
	return value
}

// normalizeFields applies serializers and redaction to a field map and
// returns a fresh map. Serializers see top-level keys only; redaction
// recurses into nested maps and slices.
func (rt *runtime) normalizeFields(fields Fields) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		if rt.redact.match(key) {
			if !rt.redact.remove {
				out[key] = RedactedValue
			}
			continue
		}
		out[key] = rt.redact.maskValue(rt.serializeValue(key, value))
	}
	return out
}
