package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UncoreDigital/secure-place-api/models"
	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileStore persists profiles across the primary table and the
// legacy mirror table.
type GormProfileStore struct {
	db *gorm.DB
}

// NewProfileStore creates a new profile store
func NewProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

// WriteProfile upserts the profile into the primary table, then
// mirrors it best-effort into user_profiles. A primary failure is
// fatal and propagated; a mirror failure is logged and swallowed.
func (s *GormProfileStore) WriteProfile(ctx context.Context, profile *models.Profile) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
	if err != nil {
		return sperrors.ProfileWriteError(err)
	}

	s.writeMirror(ctx, profile)
	return nil
}

// writeMirror upserts the legacy compatibility copy. Isolated as a
// named step so it can be removed once the schema consolidates.
func (s *GormProfileStore) writeMirror(ctx context.Context, profile *models.Profile) {
	firstName, lastName := splitFullName(profile.FullName)
	mirror := models.UserProfile{
		ID:            profile.ID,
		FirstName:     firstName,
		LastName:      lastName,
		OfficialEmail: profile.Email,
		Role:          profile.Role,
		EmployeeCode:  profile.EmployeeCode,
		ContactNumber: profile.ContactNumber,
		IsVolunteer:   profile.IsVolunteer,
		FirmID:        profile.FirmID,
		IsActive:      profile.IsActive,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&mirror).Error
	if err != nil {
		slog.Warn("Failed to write user_profiles mirror", "identityId", profile.ID, "error", err)
	}
}

// UpdateProfile applies a partial update to the primary table and
// best-effort to the mirror.
func (s *GormProfileStore) UpdateProfile(ctx context.Context, identityID string, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", identityID).
		Updates(updates)
	if result.Error != nil {
		return sperrors.ProfileWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return sperrors.NotFoundError("profile")
	}

	mirrorUpdates := mirrorColumnUpdates(updates)
	if len(mirrorUpdates) > 0 {
		err := s.db.WithContext(ctx).
			Model(&models.UserProfile{}).
			Where("id = ?", identityID).
			Updates(mirrorUpdates).Error
		if err != nil {
			slog.Warn("Failed to update user_profiles mirror", "identityId", identityID, "error", err)
		}
	}

	return nil
}

// DeleteProfile removes both profile rows. Best-effort by contract:
// identity deletion is the durable signal of removal, so callers log
// rather than fail on an error here.
func (s *GormProfileStore) DeleteProfile(ctx context.Context, identityID string) error {
	if err := s.db.WithContext(ctx).Delete(&models.UserProfile{}, "id = ?", identityID).Error; err != nil {
		slog.Warn("Failed to delete user_profiles mirror", "identityId", identityID, "error", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", identityID).Error; err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// GetProfile fetches the primary profile row by identity id
func (s *GormProfileStore) GetProfile(ctx context.Context, identityID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", identityID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sperrors.NotFoundError("profile")
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// splitFullName splits a display name into the first/last pair the
// legacy table uses
func splitFullName(fullName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// mirrorColumnUpdates maps primary-table column updates onto the
// legacy mirror's columns
func mirrorColumnUpdates(updates map[string]interface{}) map[string]interface{} {
	mirror := make(map[string]interface{}, len(updates))
	for column, value := range updates {
		switch column {
		case "full_name":
			fullName, _ := value.(string)
			firstName, lastName := splitFullName(fullName)
			mirror["first_name"] = firstName
			mirror["last_name"] = lastName
		case "email":
			mirror["official_email"] = value
		default:
			mirror[column] = value
		}
	}
	return mirror
}
