package middleware

import (
	"net/http"
	"strings"

	"github.com/UncoreDigital/secure-place-api/shared/utils"
)

// NewCORSMiddleware returns a CORS middleware configured from the
// ALLOWED_ORIGINS environment variable (comma-separated; "*" allows
// all origins, which is only appropriate for local development).
func NewCORSMiddleware() func(http.Handler) http.Handler {
	allowed := strings.Split(utils.GetEnvOrDefault("ALLOWED_ORIGINS", "*"), ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(allowed, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, candidate := range allowed {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}
