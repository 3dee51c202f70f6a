package handlers

import (
	"net/http"

	"github.com/UncoreDigital/secure-place-api/middleware"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
)

// AuthHandler handles session-related routes
type AuthHandler struct {
	auth *middleware.JWTAuthMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *middleware.JWTAuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SetupAuthRoutes configures the auth API routes
func (h *AuthHandler) SetupAuthRoutes(mux *http.ServeMux) {
	mux.Handle("/api/v1/auth/me", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMe)))
	mux.Handle("/api/v1/auth/signout", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleSignOut)))
}

// handleMe returns the authenticated caller's resolved identity
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, err := middleware.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// handleSignOut drops the caller's cached session entry
func (h *AuthHandler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, err := middleware.RequireAuthentication(r); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	h.auth.SignOut(r)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}
