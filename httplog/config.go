package httplog

import (
	"net/http"
	"strings"
	"time"

	"github.com/driftlock/logging"
)

// DefaultSlowRequestThreshold is the elapsed time above which a completed
// request additionally logs a slow-request warning.
const DefaultSlowRequestThreshold = time.Second

// DefaultRequestIDHeader is the incoming header reused as the request id
// when present, and the response header the id is echoed on.
const DefaultRequestIDHeader = "X-Request-ID"

// DefaultRedactHeaders returns the header names masked when Config leaves
// RedactHeaders nil. The list covers the credential-bearing headers that
// most commonly leak into request logs.
func DefaultRedactHeaders() []string {
	return []string{
		"authorization",
		"cookie",
		"set-cookie",
		"x-api-key",
		"x-auth-token",
	}
}

// headerMode discriminates the HeaderPolicy variants.
type headerMode uint8

const (
	headersDisabled headerMode = iota
	headersAll
	headersAllowlist
)

// HeaderPolicy selects which request headers the incoming-request entry
// carries. The zero value logs none.
type HeaderPolicy struct {
	mode  headerMode
	allow map[string]struct{}
}

// HeadersDisabled logs no headers. This is the zero value of HeaderPolicy.
func HeadersDisabled() HeaderPolicy { return HeaderPolicy{} }

// HeadersAll logs every request header, after redaction.
func HeadersAll() HeaderPolicy { return HeaderPolicy{mode: headersAll} }

// HeadersAllowlist logs only the named headers, case-insensitively, after
// redaction.
func HeadersAllowlist(names ...string) HeaderPolicy {
	allow := make(map[string]struct{}, len(names))
	for _, name := range names {
		allow[strings.ToLower(name)] = struct{}{}
	}
	return HeaderPolicy{mode: headersAllowlist, allow: allow}
}

// Config tunes the middleware. The zero value is usable: the process
// default logger, info-level lifecycle entries, no headers, no query
// params, and a one-second slow threshold.
type Config struct {
	// Logger is the base logger per-request children derive from.
	// Defaults to logging.Default().
	Logger logging.Logger

	// Level is the severity of the "Incoming request" and "Request
	// completed" entries: trace, debug, info or warn. Failures always log
	// at error level. Defaults to info.
	Level string

	// IncludeHeaders selects which request headers the incoming entry
	// carries.
	IncludeHeaders HeaderPolicy

	// RedactHeaders is the case-insensitive deny-list applied to logged
	// headers. Nil means DefaultRedactHeaders(); an empty non-nil slice
	// disables header redaction.
	RedactHeaders []string

	// IncludeQueryParams attaches the parsed query string to the incoming
	// entry under "query".
	IncludeQueryParams bool

	// SlowRequestThreshold is the elapsed time above which an extra
	// warning entry is logged. Zero means DefaultSlowRequestThreshold; a
	// negative value disables the warning.
	SlowRequestThreshold time.Duration

	// GetUserContext extracts extra fields from the request. They are
	// merged into the incoming entry payload.
	GetUserContext func(r *http.Request) logging.Fields

	// FormatRequest replaces the whole incoming-request payload.
	FormatRequest func(r *http.Request) logging.Fields

	// FormatResponse replaces the whole completion payload.
	FormatResponse func(r *http.Request, status int, elapsed time.Duration) logging.Fields

	// FormatError replaces the whole failure payload.
	FormatError func(r *http.Request, err error, status int, elapsed time.Duration) logging.Fields

	// GenerateID mints a request id when the incoming request carries
	// none. Defaults to logging.GenerateRequestID.
	GenerateID func() string

	// RequestIDHeader is the header consulted for an existing request id
	// and set on the response. Defaults to DefaultRequestIDHeader.
	RequestIDHeader string
}

// withDefaults returns a copy of c with every unset field filled in.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = logging.Default()
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if c.RedactHeaders == nil {
		c.RedactHeaders = DefaultRedactHeaders()
	}
	if c.SlowRequestThreshold == 0 {
		c.SlowRequestThreshold = DefaultSlowRequestThreshold
	}
	if c.GenerateID == nil {
		c.GenerateID = logging.GenerateRequestID
	}
	if c.RequestIDHeader == "" {
		c.RequestIDHeader = DefaultRequestIDHeader
	}
	return c
}
