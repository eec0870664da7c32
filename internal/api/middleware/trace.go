package middleware

import (
	"log/slog"
	"net/http"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api/shared"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/platform/logger"
)

// Trace assigns each request a trace ID and attaches a request-scoped
// logger carrying it, so downstream log lines and error responses can be
// correlated.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		requestLogger := logger.FromContext(ctx).With(
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		ctx = logger.WithLogger(ctx, requestLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
