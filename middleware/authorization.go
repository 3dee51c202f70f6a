package middleware

import (
	"log/slog"
	"net/http"

	"github.com/UncoreDigital/secure-place-api/models"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
)

// RequireAdmin rejects requests from actors that may not use the admin
// surface. Employees authenticate against the same auth service but
// have no business on these endpoints.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := RequireAuthentication(r)
		if err != nil {
			slog.Warn("Authorization failed: user not authenticated", "path", r.URL.Path, "method", r.Method, "error", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		if !user.Role.IsAdmin() {
			slog.Warn("Access denied: insufficient role",
				"user", user.Email,
				"role", user.Role,
				"path", r.URL.Path,
				"method", r.Method)
			utils.RespondWithError(w, http.StatusForbidden, "Insufficient privileges")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole returns a middleware that requires a specific role
func RequireRole(requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := RequireAuthentication(r)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !user.HasRole(requiredRole) {
				slog.Warn("Role requirement not met",
					"user", user.Email,
					"role", user.Role,
					"required_role", requiredRole,
					"path", r.URL.Path,
					"method", r.Method)
				utils.RespondWithError(w, http.StatusForbidden, "Insufficient privileges")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
