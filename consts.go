package logging

const (
	// RedactedValue replaces the value of any redacted field or header in the
	// emitted output.
	RedactedValue = "[REDACTED]"

	// EnvLogLevel is the environment variable consulted for the minimum level
	// when Options.Level is empty.
	EnvLogLevel = "LOG_LEVEL"

	emptyString = ""
)

// Conventional field names attached by the With*Context helpers. Downstream
// log pipelines key on these, so they are fixed rather than configurable.
const (
	KeyRequestID = "requestId"
	KeyUserID    = "userId"
	KeySessionID = "sessionId"
	KeyTraceID   = "traceId"
)

// DefaultErrorKey is the field name used by LogEvent.Err and the default
// serializer registry.
const DefaultErrorKey = "err"

const (
	defaultLevelName = "info"
	defaultFileName  = "app.log"
)

const (
	errMsgInvalidOptions = "logger options are invalid"
	errMsgInvalidLevel   = "unrecognized log level"
	errMsgLogsDir        = "cannot create logs directory"
)

// DefaultRedactPaths returns the field names masked when no redact
// configuration is supplied. The list covers the credential-bearing keys
// that most commonly leak into request and error payloads.
func DefaultRedactPaths() []string {
	return []string{
		"password",
		"token",
		"secret",
		"credentials",
		"apiKey",
		"authorization",
		"cookie",
		"sessionId",
	}
}
