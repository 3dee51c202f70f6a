package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UncoreDigital/secure-place-api/models"
	"github.com/UncoreDigital/secure-place-api/services"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthConfig contains configuration for JWT authentication. The
// auth service signs access tokens with a shared HS256 secret.
type JWTAuthConfig struct {
	Secret           string
	ExpectedIssuer   string
	ExpectedAudience string
}

// Validate checks the configuration before the middleware is installed
func (c JWTAuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	return nil
}

// JWTAuthMiddleware validates access tokens and resolves the acting
// user's role and firm from their profile row. Hot tokens are served
// from the session cache so the profile lookup is not repeated on
// every request.
type JWTAuthMiddleware struct {
	config JWTAuthConfig
	store  services.ProfileStore
	cache  *services.SessionCache
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig, store services.ProfileStore, cache *services.SessionCache) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		config: config,
		store:  store,
		cache:  cache,
	}
}

// AuthenticateJWT returns a middleware function that validates tokens
func (j *JWTAuthMiddleware) AuthenticateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := ExtractBearerToken(r)
		if err != nil {
			slog.Warn("Failed to extract bearer token", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing authorization header")
			return
		}

		if j.cache != nil {
			if user, ok := j.cache.Get(tokenString); ok {
				if user.IsTokenExpired() {
					j.cache.Clear(tokenString)
					utils.RespondWithError(w, http.StatusUnauthorized, "Access token has expired")
					return
				}
				next.ServeHTTP(w, r.WithContext(SetAuthenticatedUser(r.Context(), user)))
				return
			}
		}

		user, err := j.resolveUser(r, tokenString)
		if err != nil {
			slog.Warn("Token validation failed", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		if j.cache != nil {
			j.cache.Set(tokenString, user)
		}

		next.ServeHTTP(w, r.WithContext(SetAuthenticatedUser(r.Context(), user)))
	})
}

// resolveUser parses and validates the token, then loads the actor's
// profile to resolve role and firm
func (j *JWTAuthMiddleware) resolveUser(r *http.Request, tokenString string) (*models.AuthenticatedUser, error) {
	claims := &models.UserClaims{}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.config.ExpectedIssuer != "" {
		options = append(options, jwt.WithIssuer(j.config.ExpectedIssuer))
	}
	if j.config.ExpectedAudience != "" {
		options = append(options, jwt.WithAudience(j.config.ExpectedAudience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.config.Secret), nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	profile, err := j.store.GetProfile(r.Context(), claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile for token subject: %w", err)
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	user := &models.AuthenticatedUser{
		ID:       profile.ID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Role:     profile.Role,
		FirmID:   profile.FirmID,
	}
	if claims.IssuedAt != nil {
		user.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}
	return user, nil
}

// SignOut clears the cached session for the request's token
func (j *JWTAuthMiddleware) SignOut(r *http.Request) {
	if j.cache == nil {
		return
	}
	if tokenString, err := ExtractBearerToken(r); err == nil {
		j.cache.Clear(tokenString)
	}
}
