package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims represents the JWT claims carried by the auth service's
// access tokens. The subject is the identity id.
type UserClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthenticatedUser represents the authenticated actor for a request.
// Role and FirmID are resolved from the actor's profile row, not from
// token claims, so role changes take effect without re-issuing tokens.
type AuthenticatedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	FirmID    *string   `json:"firmId,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsTokenExpired reports whether the actor's token has expired
func (u *AuthenticatedUser) IsTokenExpired() bool {
	return !u.ExpiresAt.IsZero() && time.Now().After(u.ExpiresAt)
}

// HasRole reports whether the actor holds the given role
func (u *AuthenticatedUser) HasRole(role Role) bool {
	return u.Role == role
}

// CanAccessFirm reports whether the actor may operate on resources
// belonging to the given firm. Super admins may operate on any firm;
// firm admins only on their own.
func (u *AuthenticatedUser) CanAccessFirm(firmID string) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	if u.Role == RoleFirmAdmin && u.FirmID != nil {
		return *u.FirmID == firmID
	}
	return false
}
