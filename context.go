package logging

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"time"
)

// GenerateRequestID produces an identifier of the form
// req_<unixMillis>_<suffix>, where the suffix is a random uint64 rendered
// in base36 (at most 13 characters). Collisions are statistically
// negligible and not defended against.
func GenerateRequestID() string {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)
	return "req_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + suffix
}

// WithRequestContext returns a child logger carrying requestId. When
// requestID is empty a fresh one is generated. The input logger is never
// modified.
func WithRequestContext(l Logger, requestID string) Logger {
	if requestID == emptyString {
		requestID = GenerateRequestID()
	}
	return l.WithContext(Fields{KeyRequestID: requestID})
}

// WithUserContext returns a child logger carrying userId.
func WithUserContext(l Logger, userID string) Logger {
	return l.WithContext(Fields{KeyUserID: userID})
}

// WithSessionContext returns a child logger carrying sessionId. Note that
// sessionId is in the default redaction set, so loggers built with stock
// options emit the masked marker for it.
func WithSessionContext(l Logger, sessionID string) Logger {
	return l.WithContext(Fields{KeySessionID: sessionID})
}

// WithTraceContext returns a child logger carrying traceId for correlating
// entries with an externally created trace. No spans are created here.
func WithTraceContext(l Logger, traceID string) Logger {
	return l.WithContext(Fields{KeyTraceID: traceID})
}
