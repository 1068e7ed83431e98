package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Fields is a loose bag of structured log fields.
type Fields map[string]any

// SerializerFunc rewrites a field value before emission. Serializers are
// looked up by top-level field name.
type SerializerFunc func(value any) any

// Options configures a Logger built by New. The zero value is usable; New
// fills every unset field from the documented default.
type Options struct {
	// Level is the minimum severity emitted: trace, debug, info, warn,
	// error or fatal. When empty, the LOG_LEVEL environment variable is
	// consulted if it names a recognized level, then info.
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal"`

	// Redact controls which field names are censored in output.
	Redact RedactOptions `koanf:"redact"`

	// Base holds fields bound to every entry this logger and its children
	// emit, such as service name and environment.
	Base Fields `koanf:"base"`

	// DisableTimestamp drops the timestamp field from entries. Mostly
	// useful for deterministic test output.
	DisableTimestamp bool `koanf:"disable_timestamp"`

	// MessageKey renames the message field. It rewires the zerolog
	// process-wide field name, so the last constructed logger wins.
	MessageKey string `koanf:"message_key"`

	// ErrorKey is the field name written by LogEvent.Err. Defaults to
	// DefaultErrorKey.
	ErrorKey string `koanf:"error_key"`

	// Console mirrors entries to stderr in human-readable form.
	Console bool `koanf:"console"`

	// File enables a size-rotated log file when non-nil.
	File *FileOptions `koanf:"file"`

	// Output receives the JSON stream when non-nil, replacing the default
	// stdout sink. File and Console destinations still apply alongside it.
	Output io.Writer `koanf:"-"`

	// LevelFormatter overrides how level values are rendered. Like
	// MessageKey it applies to the zerolog process-wide configuration.
	LevelFormatter func(level zerolog.Level) string `koanf:"-"`

	// Serializers maps top-level field names to value rewriters. The error
	// key is backed by SerializeError unless overridden here.
	Serializers map[string]SerializerFunc `koanf:"-"`
}

// RedactOptions selects fields to censor. A nil Paths slice means the
// DefaultRedactPaths set; an empty non-nil slice disables redaction.
type RedactOptions struct {
	Paths []string `koanf:"paths"`

	// Remove drops redacted fields entirely instead of masking them with
	// RedactedValue.
	Remove bool `koanf:"remove"`
}

// FileOptions configures the rotating file destination.
type FileOptions struct {
	// Dir is the directory log files are written to, created if missing.
	Dir string `koanf:"dir" validate:"required"`

	// Name is the log file name inside Dir. Defaults to app.log.
	Name string `koanf:"name"`

	// MaxSizeMB is the size a file may reach before rotation.
	MaxSizeMB int `koanf:"max_size_mb" validate:"gte=0"`

	// MaxBackups is how many rotated files to keep.
	MaxBackups int `koanf:"max_backups" validate:"gte=0"`

	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `koanf:"max_age_days" validate:"gte=0"`

	// Compress gzips rotated files.
	Compress bool `koanf:"compress"`
}

// DefaultOptions returns the configuration New applies when passed nil.
func DefaultOptions() *Options {
	return &Options{
		Redact:   RedactOptions{Paths: DefaultRedactPaths()},
		ErrorKey: DefaultErrorKey,
	}
}

// withDefaults returns a copy of o with unset fields filled in. The
// receiver is never modified.
func (o *Options) withDefaults() *Options {
	out := *o
	if out.Redact.Paths == nil {
		out.Redact.Paths = DefaultRedactPaths()
	}
	if out.ErrorKey == emptyString {
		out.ErrorKey = DefaultErrorKey
	}
	return &out
}
