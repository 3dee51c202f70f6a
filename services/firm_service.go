package services

import (
	"context"
	"fmt"
	"time"

	"github.com/UncoreDigital/secure-place-api/models"
	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"gorm.io/gorm"
)

// FirmService handles firm-related operations
type FirmService struct {
	db *gorm.DB
}

// NewFirmService creates a new firm service
func NewFirmService(db *gorm.DB) *FirmService {
	return &FirmService{db: db}
}

// CreateFirm creates a new firm
func (s *FirmService) CreateFirm(ctx context.Context, req *models.CreateFirmRequest) (*models.FirmResponse, error) {
	if req.Name == "" {
		return nil, sperrors.ValidationError("MISSING_NAME", "Firm name is required")
	}

	firm := models.Firm{
		FirmID:       models.NewPrefixedID("firm"),
		Name:         req.Name,
		Industry:     req.Industry,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	if err := s.db.WithContext(ctx).Create(&firm).Error; err != nil {
		return nil, fmt.Errorf("failed to create firm: %w", err)
	}

	return toFirmResponse(&firm), nil
}

// GetFirm retrieves a firm by id
func (s *FirmService) GetFirm(ctx context.Context, firmID string) (*models.FirmResponse, error) {
	var firm models.Firm
	err := s.db.WithContext(ctx).First(&firm, "firm_id = ?", firmID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sperrors.NotFoundError("firm")
		}
		return nil, fmt.Errorf("failed to fetch firm: %w", err)
	}
	return toFirmResponse(&firm), nil
}

// GetFirmName resolves a firm's display name. Implements FirmLookup.
func (s *FirmService) GetFirmName(ctx context.Context, firmID string) (string, error) {
	var firm models.Firm
	err := s.db.WithContext(ctx).Select("name").First(&firm, "firm_id = ?", firmID).Error
	if err != nil {
		return "", fmt.Errorf("failed to fetch firm name: %w", err)
	}
	return firm.Name, nil
}

// GetAllFirms retrieves all firms
func (s *FirmService) GetAllFirms(ctx context.Context) ([]models.FirmResponse, error) {
	var firms []models.Firm
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&firms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch firms: %w", err)
	}

	response := make([]models.FirmResponse, len(firms))
	for i := range firms {
		response[i] = *toFirmResponse(&firms[i])
	}
	return response, nil
}

// UpdateFirm updates an existing firm
func (s *FirmService) UpdateFirm(ctx context.Context, firmID string, req *models.UpdateFirmRequest) (*models.FirmResponse, error) {
	var firm models.Firm
	err := s.db.WithContext(ctx).First(&firm, "firm_id = ?", firmID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sperrors.NotFoundError("firm")
		}
		return nil, fmt.Errorf("failed to fetch firm: %w", err)
	}

	if req.Name != nil {
		firm.Name = *req.Name
	}
	if req.Industry != nil {
		firm.Industry = *req.Industry
	}
	if req.ContactEmail != nil {
		firm.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		firm.Phone = *req.Phone
	}
	if req.Address != nil {
		firm.Address = *req.Address
	}

	if err := s.db.WithContext(ctx).Save(&firm).Error; err != nil {
		return nil, fmt.Errorf("failed to update firm: %w", err)
	}

	return toFirmResponse(&firm), nil
}

// DeleteFirm removes a firm. Profiles referencing the firm are left
// in place; display layers treat the dangling reference as "no firm".
func (s *FirmService) DeleteFirm(ctx context.Context, firmID string) error {
	result := s.db.WithContext(ctx).Delete(&models.Firm{}, "firm_id = ?", firmID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete firm: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return sperrors.NotFoundError("firm")
	}
	return nil
}

func toFirmResponse(firm *models.Firm) *models.FirmResponse {
	return &models.FirmResponse{
		FirmID:       firm.FirmID,
		Name:         firm.Name,
		Industry:     firm.Industry,
		ContactEmail: firm.ContactEmail,
		Phone:        firm.Phone,
		Address:      firm.Address,
		CreatedAt:    firm.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    firm.UpdatedAt.Format(time.RFC3339),
	}
}
