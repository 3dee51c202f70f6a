package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/UncoreDigital/secure-place-api/models"
	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"gorm.io/gorm"
)

// EmployeeService handles employee read/update/delete operations.
// Creation goes through the ProvisioningService.
type EmployeeService struct {
	db    *gorm.DB
	idp   idp.IdentityProvider
	store ProfileStore
	firms FirmLookup
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(db *gorm.DB, provider idp.IdentityProvider, store ProfileStore, firms FirmLookup) *EmployeeService {
	return &EmployeeService{db: db, idp: provider, store: store, firms: firms}
}

// GetEmployee retrieves an employee visible to the given actor
func (s *EmployeeService) GetEmployee(ctx context.Context, actor *models.AuthenticatedUser, identityID string) (*models.EmployeeResponse, error) {
	profile, err := s.store.GetProfile(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeFirmAccess(actor, profile); err != nil {
		return nil, err
	}
	return toEmployeeResponse(profile, s.firmName(ctx, profile.FirmID)), nil
}

// GetAllEmployees lists employees. Firm-scoped administrators only see
// their own firm regardless of the requested filter.
func (s *EmployeeService) GetAllEmployees(ctx context.Context, actor *models.AuthenticatedUser, firmFilter *string) ([]models.EmployeeResponse, error) {
	if actor != nil && actor.Role.FirmScoped() {
		if actor.FirmID == nil || *actor.FirmID == "" {
			return nil, sperrors.ForbiddenError("Administrator is not assigned to a firm")
		}
		firmFilter = actor.FirmID
	}

	query := s.db.WithContext(ctx).Model(&models.Profile{}).Where("role = ?", models.RoleEmployee)
	if firmFilter != nil && *firmFilter != "" {
		query = query.Where("firm_id = ?", *firmFilter)
	}

	var profiles []models.Profile
	if err := query.Order("full_name ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	firmNames := s.firmNamesFor(ctx, profiles)
	response := make([]models.EmployeeResponse, len(profiles))
	for i := range profiles {
		name := ""
		if profiles[i].FirmID != nil {
			name = firmNames[*profiles[i].FirmID]
		}
		response[i] = *toEmployeeResponse(&profiles[i], name)
	}
	return response, nil
}

// UpdateEmployee applies a partial update, keeping the identity
// provider's display name in sync when the name changes
func (s *EmployeeService) UpdateEmployee(ctx context.Context, actor *models.AuthenticatedUser, identityID string, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error) {
	profile, err := s.store.GetProfile(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeFirmAccess(actor, profile); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["full_name"] = *req.Name
	}
	if req.EmployeeCode != nil {
		updates["employee_code"] = *req.EmployeeCode
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = *req.ContactNumber
	}
	if req.IsVolunteer != nil {
		updates["is_volunteer"] = *req.IsVolunteer
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	// Only a super admin may move an employee between firms
	if req.FirmID != nil && actor != nil && actor.Role == models.RoleSuperAdmin {
		updates["firm_id"] = *req.FirmID
	}

	if len(updates) == 0 {
		return toEmployeeResponse(profile, s.firmName(ctx, profile.FirmID)), nil
	}

	if req.Name != nil {
		_, err := s.idp.UpdateUser(ctx, identityID, &idp.UserUpdate{DisplayName: req.Name})
		if err != nil {
			return nil, fmt.Errorf("failed to update identity: %w", err)
		}
		slog.Info("Updated identity display name", "identityId", identityID)
	}

	if err := s.store.UpdateProfile(ctx, identityID, updates); err != nil {
		return nil, err
	}

	updated, err := s.store.GetProfile(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(updated, s.firmName(ctx, updated.FirmID)), nil
}

// DeleteEmployee removes the employee's identity and profile. Identity
// deletion is the durable signal of removal and is fatal if it fails;
// the profile delete is best-effort and logged.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, actor *models.AuthenticatedUser, identityID string) error {
	profile, err := s.store.GetProfile(ctx, identityID)
	if err != nil {
		return err
	}
	if err := s.authorizeFirmAccess(actor, profile); err != nil {
		return err
	}

	if err := s.idp.DeleteUser(ctx, identityID); err != nil {
		return sperrors.IdentityDeletionError(err)
	}
	slog.Info("Deleted identity for employee", "identityId", identityID)

	if err := s.store.DeleteProfile(ctx, identityID); err != nil {
		slog.Warn("Failed to delete profile after identity removal", "identityId", identityID, "error", err)
	}
	return nil
}

// authorizeFirmAccess rejects firm-scoped actors reaching outside
// their own firm
func (s *EmployeeService) authorizeFirmAccess(actor *models.AuthenticatedUser, profile *models.Profile) error {
	if actor == nil || actor.Role == models.RoleSuperAdmin {
		return nil
	}
	if profile.FirmID != nil && actor.CanAccessFirm(*profile.FirmID) {
		return nil
	}
	return sperrors.ForbiddenError("Employee belongs to another firm")
}

func (s *EmployeeService) firmName(ctx context.Context, firmID *string) string {
	if firmID == nil || s.firms == nil {
		return ""
	}
	name, err := s.firms.GetFirmName(ctx, *firmID)
	if err != nil {
		// Dangling firm references render as "no firm"
		return ""
	}
	return name
}

func (s *EmployeeService) firmNamesFor(ctx context.Context, profiles []models.Profile) map[string]string {
	ids := make([]string, 0, len(profiles))
	seen := map[string]bool{}
	for i := range profiles {
		if profiles[i].FirmID != nil && !seen[*profiles[i].FirmID] {
			seen[*profiles[i].FirmID] = true
			ids = append(ids, *profiles[i].FirmID)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}
	}

	var firms []models.Firm
	if err := s.db.WithContext(ctx).Where("firm_id IN ?", ids).Find(&firms).Error; err != nil {
		slog.Warn("Failed to resolve firm names", "error", err)
		return map[string]string{}
	}

	names := make(map[string]string, len(firms))
	for i := range firms {
		names[firms[i].FirmID] = firms[i].Name
	}
	return names
}
