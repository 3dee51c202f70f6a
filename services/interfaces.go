package services

import (
	"context"

	"github.com/UncoreDigital/secure-place-api/models"
)

// ProfileStore persists the dual profile records. The primary
// `profiles` table is the source of truth; the legacy `user_profiles`
// mirror is written best-effort.
type ProfileStore interface {
	WriteProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, identityID string, updates map[string]interface{}) error
	DeleteProfile(ctx context.Context, identityID string) error
	GetProfile(ctx context.Context, identityID string) (*models.Profile, error)
}

// WelcomeEmail is the payload for a provisioning welcome message
type WelcomeEmail struct {
	Name     string
	Email    string
	Password string
	FirmName string
	LoginURL string
}

// SendResult reports a notification attempt. A failure never fails
// the calling operation.
type SendResult struct {
	Success bool
	Error   string
}

// WelcomeMailer composes and dispatches welcome emails
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, email *WelcomeEmail) SendResult
}

// FirmLookup resolves firm display data for notifications and
// responses. A missing firm is not an error for callers that tolerate
// dangling references.
type FirmLookup interface {
	GetFirmName(ctx context.Context, firmID string) (string, error)
}
