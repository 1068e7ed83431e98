package httplog

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/driftlock/logging"
)

// Lifecycle messages, one per request phase.
const (
	msgIncoming  = "Incoming request"
	msgSlow      = "Slow request detected"
	msgCompleted = "Request completed"
	msgFailed    = "Request failed"
)

const zeroTraceID = "00000000000000000000000000000000"

// Middleware returns an http.Handler wrapper that logs the lifecycle of
// every request it serves: one incoming entry, an optional slow-request
// warning, and exactly one completion or failure entry.
//
// Each request gets a child logger carrying its request id (and trace id
// when the request has one). The child is bound into the request context
// for FromContext/FromRequest, and the request id is echoed on the
// response via cfg.RequestIDHeader.
//
// Panics from downstream handlers are logged as failures and re-raised
// with their original value, so the host server's own recovery still runs.
// http.ErrAbortHandler passes through untouched.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(cfg.RequestIDHeader)
			if reqID == "" {
				reqID = cfg.GenerateID()
			}

			reqLogger := logging.WithRequestContext(cfg.Logger, reqID)
			if traceID := traceIDFromRequest(r); traceID != "" {
				reqLogger = logging.WithTraceContext(reqLogger, traceID)
			}

			levelEvent(reqLogger, cfg.Level).Fields(requestPayload(cfg, r)).Msg(msgIncoming)

			w.Header().Set(cfg.RequestIDHeader, reqID)

			ctx := WithLogger(r.Context(), reqLogger)
			ctx = withRequestID(ctx, reqID)
			r = r.WithContext(ctx)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// Connection-abort sentinel; the host server owns it.
					panic(rec)
				}

				elapsed := time.Since(start)
				err, ok := rec.(error)
				if !ok {
					err = &logging.PanicError{Value: rec}
				}

				if ww.Status() == 0 {
					ww.WriteHeader(http.StatusInternalServerError)
				}
				status := ww.Status()
				if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}

				payload := logging.Fields{
					logging.DefaultErrorKey: err,
					"duration":              millis(elapsed),
					"status":                status,
					"method":                r.Method,
					"path":                  r.URL.Path,
				}
				if cfg.FormatError != nil {
					payload = cfg.FormatError(r, err, status, elapsed)
				}
				reqLogger.ErrorWith().Fields(payload).Msg(msgFailed)

				panic(rec)
			}()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			if cfg.SlowRequestThreshold >= 0 && elapsed > cfg.SlowRequestThreshold {
				reqLogger.WarnWith().
					Float64("duration", millis(elapsed)).
					Float64("threshold", millis(cfg.SlowRequestThreshold)).
					Msg(msgSlow)
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			payload := logging.Fields{
				"status":   status,
				"duration": millis(elapsed),
			}
			if cfg.FormatResponse != nil {
				payload = cfg.FormatResponse(r, status, elapsed)
			}
			levelEvent(reqLogger, cfg.Level).Fields(payload).Msg(msgCompleted)
		})
	}
}

// requestPayload builds the incoming-request fields. A configured
// FormatRequest replaces the computed payload entirely.
func requestPayload(cfg Config, r *http.Request) logging.Fields {
	if cfg.FormatRequest != nil {
		return cfg.FormatRequest(r)
	}

	payload := logging.Fields{
		"method": r.Method,
		"url":    r.URL.String(),
		"path":   r.URL.Path,
	}
	if headers := collectHeaders(cfg, r.Header); headers != nil {
		payload["headers"] = headers
	}
	if cfg.IncludeQueryParams {
		payload["query"] = logging.ExtractQueryParams(r.URL.String())
	}
	if cfg.GetUserContext != nil {
		for key, val := range cfg.GetUserContext(r) {
			payload[key] = val
		}
	}
	return payload
}

// collectHeaders flattens request headers to their first values, then
// applies redaction and the configured policy. Returns nil when header
// logging is disabled.
func collectHeaders(cfg Config, h http.Header) map[string]string {
	if cfg.IncludeHeaders.mode == headersDisabled {
		return nil
	}

	flat := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) > 0 {
			flat[name] = values[0]
		}
	}

	redacted := logging.RedactHeaders(flat, cfg.RedactHeaders)
	if cfg.IncludeHeaders.mode != headersAllowlist {
		return redacted
	}

	filtered := make(map[string]string, len(cfg.IncludeHeaders.allow))
	for name := range cfg.IncludeHeaders.allow {
		if val, found := redacted[name]; found {
			filtered[name] = val
		}
	}
	return filtered
}

// levelEvent maps the configured level name onto the logger's event
// builders. Unknown names fall back to info.
func levelEvent(l logging.Logger, level string) logging.LogEvent {
	switch strings.ToLower(level) {
	case "trace":
		return l.TraceWith()
	case "debug":
		return l.DebugWith()
	case "warn":
		return l.WarnWith()
	case "error":
		return l.ErrorWith()
	default:
		return l.InfoWith()
	}
}

// traceIDFromRequest extracts a trace id for log correlation from the W3C
// traceparent header (version-traceid-spanid-flags) or an X-Trace-Id
// fallback. Attachment only; no spans are created here.
func traceIDFromRequest(r *http.Request) string {
	if tp := r.Header.Get("traceparent"); tp != "" {
		parts := strings.Split(tp, "-")
		if len(parts) == 4 && len(parts[1]) == 32 && parts[1] != zeroTraceID {
			return parts[1]
		}
	}
	return r.Header.Get("X-Trace-Id")
}

// millis renders a duration as fractional milliseconds, the unit the
// duration and threshold fields are logged in.
func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
