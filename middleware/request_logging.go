package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UncoreDigital/secure-place-api/pkg/metrics"
)

// RequestLogging logs each request and response and records HTTP metrics.
// The recorder may be nil, in which case only logging is performed.
func RequestLogging(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			clientIP := getClientIP(r)

			slog.Info("HTTP Request",
				"method", r.Method,
				"path", r.URL.Path,
				"ip", clientIP,
			)

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			slog.Info("HTTP Response",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", duration,
				"ip", clientIP,
			)

			if wrapped.statusCode >= 400 {
				slog.Warn("HTTP Error Response",
					"method", r.Method,
					"path", r.URL.Path,
					"status", wrapped.statusCode,
					"ip", clientIP,
				)
			}

			if recorder != nil {
				recorder.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), wrapped.statusCode, duration)
			}
		})
	}
}

// routeLabel collapses resource identifiers out of the path so metric
// cardinality stays bounded.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	// Keep at most the first three segments, e.g. /api/v1/employees.
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return "/" + strings.Join(parts, "/")
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
