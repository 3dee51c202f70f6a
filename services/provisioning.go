package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/UncoreDigital/secure-place-api/models"
	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"github.com/UncoreDigital/secure-place-api/pkg/metrics"
)

// ProvisioningService drives the end-to-end creation of an employee
// account: identity creation, profile write with compensating identity
// deletion on failure, and a best-effort welcome notification.
type ProvisioningService struct {
	idp      idp.IdentityProvider
	store    ProfileStore
	mailer   WelcomeMailer
	firms    FirmLookup
	generate func() string
	metrics  metrics.Recorder
	timeout  time.Duration
}

// NewProvisioningService creates a provisioning service
func NewProvisioningService(provider idp.IdentityProvider, store ProfileStore, mailer WelcomeMailer, firms FirmLookup, recorder metrics.Recorder) *ProvisioningService {
	return &ProvisioningService{
		idp:      provider,
		store:    store,
		mailer:   mailer,
		firms:    firms,
		generate: GeneratePassword,
		metrics:  recorder,
		timeout:  30 * time.Second,
	}
}

// ProvisionEmployee creates an employee account on behalf of the given
// administrator. Steps run strictly in order: identity creation must
// precede the profile write because the profile's primary key is the
// identity id. A failed profile write triggers exactly one
// compensating identity deletion; its own failure is logged, never
// propagated, so the original cause remains the reported one. The
// welcome email is best-effort and never fails the operation.
func (s *ProvisioningService) ProvisionEmployee(ctx context.Context, actor *models.AuthenticatedUser, req *models.CreateEmployeeRequest) (*models.ProvisioningResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Validating: reject before any side effect
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, sperrors.ValidationError("MISSING_NAME", "Employee name is required")
	}
	if email == "" {
		return nil, sperrors.ValidationError("MISSING_EMAIL", "Employee email is required")
	}

	// A firm-scoped administrator always provisions into their own
	// firm; any client-supplied firm id is ignored so an admin cannot
	// cross tenants.
	firmID := req.FirmID
	if actor != nil && actor.Role.FirmScoped() {
		firmID = actor.FirmID
	}
	if firmID == nil || *firmID == "" {
		return nil, sperrors.ValidationError("MISSING_FIRM", "Employees must be assigned to a firm")
	}

	password := s.generate()

	// CreatingIdentity
	created, err := s.idp.CreateUser(ctx, &idp.NewUser{
		Email:       email,
		Password:    password,
		DisplayName: name,
	})
	if err != nil {
		s.recordOutcome(string(sperrors.StageIdentity), false)
		return nil, sperrors.IdentityCreationError(err)
	}

	slog.Info("Created identity for employee", "identityId", created.ID, "email", email)

	// WritingProfile
	profile := &models.Profile{
		ID:          created.ID,
		FullName:    name,
		Email:       email,
		Role:        models.RoleEmployee,
		IsVolunteer: req.IsVolunteer,
		FirmID:      firmID,
		IsActive:    true,
	}
	if req.EmployeeCode != nil {
		profile.EmployeeCode = *req.EmployeeCode
	}
	if req.ContactNumber != nil {
		profile.ContactNumber = *req.ContactNumber
	}

	if err := s.store.WriteProfile(ctx, profile); err != nil {
		s.compensate(ctx, created.ID)
		s.recordOutcome(string(sperrors.StageProfile), false)
		if apiErr := sperrors.GetAPIError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, sperrors.ProfileWriteError(err)
	}

	// SendingWelcome: outcome recorded for observability only
	firmName := s.resolveFirmName(ctx, firmID)
	sendResult := s.mailer.SendWelcome(ctx, &WelcomeEmail{
		Name:     name,
		Email:    email,
		Password: password,
		FirmName: firmName,
	})
	if !sendResult.Success {
		slog.Warn("Welcome email not delivered", "email", email, "error", sendResult.Error)
		if s.metrics != nil {
			s.metrics.RecordNotificationFailure()
		}
	}

	s.recordOutcome("succeeded", true)

	result := &models.ProvisioningResult{
		Employee:         toEmployeeResponse(profile, firmName),
		NotificationSent: sendResult.Success,
	}
	if !sendResult.Success {
		result.NotificationWarning = sendResult.Error
	}
	return result, nil
}

// compensate makes exactly one best-effort attempt to delete the
// identity created earlier in the run. Its failure is swallowed so the
// profile-write failure stays the reported cause; the orphan sweep
// picks up any residue.
func (s *ProvisioningService) compensate(ctx context.Context, identityID string) {
	// The request context may already be cancelled or past its deadline
	// when the profile write fails; the delete runs on a fresh one.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.idp.DeleteUser(ctx, identityID); err != nil {
		slog.Error("Compensating identity deletion failed; identity may be orphaned",
			"identityId", identityID, "error", err)
		if s.metrics != nil {
			s.metrics.RecordCompensation(false)
		}
		return
	}
	slog.Info("Compensating identity deletion completed", "identityId", identityID)
	if s.metrics != nil {
		s.metrics.RecordCompensation(true)
	}
}

// resolveFirmName looks up the firm display name for the welcome
// email. A dangling firm reference is tolerated and renders as no firm.
func (s *ProvisioningService) resolveFirmName(ctx context.Context, firmID *string) string {
	if firmID == nil || s.firms == nil {
		return ""
	}
	name, err := s.firms.GetFirmName(ctx, *firmID)
	if err != nil {
		slog.Warn("Failed to resolve firm name for welcome email", "firmId", *firmID, "error", err)
		return ""
	}
	return name
}

func (s *ProvisioningService) recordOutcome(stage string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordProvisioningOutcome(stage, success)
	}
}

// toEmployeeResponse converts a profile row to the API response shape
func toEmployeeResponse(profile *models.Profile, firmName string) *models.EmployeeResponse {
	return &models.EmployeeResponse{
		ID:            profile.ID,
		Name:          profile.FullName,
		Email:         profile.Email,
		Role:          profile.Role,
		EmployeeCode:  profile.EmployeeCode,
		ContactNumber: profile.ContactNumber,
		IsVolunteer:   profile.IsVolunteer,
		FirmID:        profile.FirmID,
		FirmName:      firmName,
		IsActive:      profile.IsActive,
		CreatedAt:     profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     profile.UpdatedAt.Format(time.RFC3339),
	}
}
