package idp

import "context"

// ProviderType identifies a supported identity provider implementation
type ProviderType string

const (
	ProviderSupabase ProviderType = "supabase"
	ProviderSCIM     ProviderType = "scim"
)

// IdentityProvider defines a contract for all identity providers as
// consumed by the provisioning workflow. All calls authenticate with a
// privileged service credential; none of this surface is reachable
// from the browser.
type IdentityProvider interface {
	// CreateUser creates an authentication principal that can sign in
	// immediately with the given credential. Email confirmation is
	// pre-set to confirmed; no verification email is triggered.
	CreateUser(ctx context.Context, user *NewUser) (*UserInfo, error)
	GetUser(ctx context.Context, userID string) (*UserInfo, error)
	UpdateUser(ctx context.Context, userID string, update *UserUpdate) (*UserInfo, error)
	DeleteUser(ctx context.Context, userID string) error
	// ListUsers returns all known principals. Used by the orphan
	// reconciliation sweep.
	ListUsers(ctx context.Context) ([]*UserInfo, error)
}

// NewUser carries the attributes for a new authentication principal
type NewUser struct {
	Email       string
	Password    string
	DisplayName string
}

// UserUpdate carries a partial update; nil fields are left unchanged
type UserUpdate struct {
	Email       *string
	DisplayName *string
}

// UserInfo represents an authentication principal as reported by the
// provider
type UserInfo struct {
	ID             string
	Email          string
	DisplayName    string
	EmailConfirmed bool
}
