package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/prabesh187/recipe-sharing-platform/pkg/httputil"
	"github.com/prabesh187/recipe-sharing-platform/pkg/logger"
)

// Recovery converts handler panics into the standard 500 error envelope
// instead of killing the connection. The stack is logged with the
// request-scoped logger so the correlation ID attached by RequestLogging
// travels with it; the fallback logger is used for requests that panic before
// the logging middleware runs.
func Recovery(fallback *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l := logger.FromContext(r.Context())
					if l == slog.Default() {
						l = fallback
					}
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
						Error: &httputil.ErrorResponse{
							Code:      "INTERNAL_ERROR",
							Message:   "an internal error occurred",
							RequestID: logger.CorrelationIDFromContext(r.Context()),
						},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
