package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/UncoreDigital/secure-place-api/models"
)

type contextKey string

const authenticatedUserKey contextKey = "authenticatedUser"

// SetAuthenticatedUser stores the actor on the request context
func SetAuthenticatedUser(ctx context.Context, user *models.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authenticatedUserKey, user)
}

// GetAuthenticatedUser retrieves the actor from the request context
func GetAuthenticatedUser(ctx context.Context) (*models.AuthenticatedUser, bool) {
	user, ok := ctx.Value(authenticatedUserKey).(*models.AuthenticatedUser)
	return user, ok
}

// RequireAuthentication returns the actor or an error if the request
// was not authenticated
func RequireAuthentication(r *http.Request) (*models.AuthenticatedUser, error) {
	user, ok := GetAuthenticatedUser(r.Context())
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}
	return user, nil
}

// ExtractBearerToken pulls the bearer token from the Authorization header
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header format")
	}
	return parts[1], nil
}
