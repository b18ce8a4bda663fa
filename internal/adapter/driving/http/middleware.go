package httphandler

import (
	"log/slog"
	"net/http"
	"time"
)

// Middleware wraps a handler with another behavior. ApplyMiddleware composes
// them outermost-first.
type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps the handler with the standard chain: request logging
// on the outside, panic recovery on the inside so a panicking handler is
// still logged as a request.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	chain := []Middleware{
		requestLog(logger),
		recoverPanics(logger),
	}
	for i := len(chain) - 1; i >= 0; i-- {
		next = chain[i](next)
	}
	return next
}

// requestLog emits one line per completed request.
func requestLog(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// recoverPanics converts a handler panic into an opaque 500.
func recoverPanics(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					logger.Error("handler panicked", "panic", v, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder remembers the status code written to the response so the
// request log can report it. An unset status means the handler wrote a body
// without an explicit header, which net/http treats as 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}
