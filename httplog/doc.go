// Package httplog adapts a logging.Logger into net/http middleware that
// observes the full lifecycle of every request.
//
// Key features
//   - One "Incoming request" entry per request, with method, url and path
//     plus optional headers, query params and caller-supplied user context
//   - Per-request child loggers carrying the request id (and trace id when
//     the request arrives with one), retrievable downstream via
//     FromContext/FromRequest
//   - Exactly one terminal entry per request: "Request completed" on normal
//     returns, "Request failed" when the handler panics
//   - Panic values are logged with their error chain and re-raised
//     untouched, so the host server's recovery semantics are preserved
//   - Header redaction reuses the logging package's deny-list masking
//
// Typical usage
//
//	r := chi.NewRouter()
//	r.Use(httplog.Middleware(httplog.Config{
//		Logger:             log,
//		IncludeQueryParams: true,
//	}))
//	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
//		httplog.FromRequest(r).InfoWith().Msg("fetching item")
//	})
package httplog
