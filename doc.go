// Package logging provides a thin wrapper over rs/zerolog with a
// structured-first API, immutable context composition, and sensitive-field
// redaction applied before serialization.
//
// Key features
//   - Structured logging only: typed fields over printf-style helpers
//   - Immutable child loggers via WithContext/With for per-request scoping;
//     parents are never mutated and composition is stackable
//   - Deny-list redaction of credential-bearing fields at any nesting depth
//   - Error serialization that preserves type, message, stack and the full
//     unwrap chain (outermost -> root) of wrapped errors
//   - Level gating that skips all field building for disabled entries
//   - Optional console mirroring and lumberjack file rotation alongside the
//     default stdout JSON stream
//   - Explicit fatal supervision: InstallFatalHandlers, CapturePanic and Go
//     log unrecovered faults at fatal severity and exit non-zero
//
// Typical usage
//
//	log, err := logging.New(&logging.Options{Level: "debug"})
//	if err != nil {
//		panic(err)
//	}
//
//	log.InfoWith().Str("user_id", id).Msg("processed")
//	req := logging.WithRequestContext(log, "")
//	req.ErrorWith().Err(err).Msg("failed")
//
// The httplog subpackage adapts a Logger into net/http middleware that logs
// the request lifecycle: one incoming entry, an optional slow-request
// warning, and exactly one completion or failure entry per request.
package logging
