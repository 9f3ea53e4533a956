package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/logger"
)

// RequestLogger returns middleware that assigns each request a correlation ID,
// builds a request-scoped logger enriched with it, stores the logger in
// context via logger.NewContext, and emits a completion log line. Downstream
// handlers retrieve the logger with logger.FromContext(ctx).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			correlationID := r.Header.Get("X-Correlation-ID")
			if correlationID == "" {
				correlationID = uuid.New().String()
			}
			ctx = logger.WithCorrelationID(ctx, correlationID)

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			rw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r.WithContext(ctx))

			enriched.InfoContext(ctx, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.statusCode),
			)
		})
	}
}
