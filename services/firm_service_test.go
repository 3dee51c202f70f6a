package services

import (
	"context"
	"strings"
	"testing"

	"github.com/UncoreDigital/secure-place-api/models"
	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateFirm_Success(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)

	req := &models.CreateFirmRequest{
		Name:         "Acme Safety",
		Industry:     "Construction",
		ContactEmail: "office@acme.example.com",
	}

	firm, err := service.CreateFirm(context.Background(), req)

	assert.NoError(t, err)
	assert.NotNil(t, firm)
	assert.True(t, strings.HasPrefix(firm.FirmID, "firm_"))
	assert.Equal(t, "Acme Safety", firm.Name)
	assert.Equal(t, "Construction", firm.Industry)
}

func TestCreateFirm_MissingName(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)

	firm, err := service.CreateFirm(context.Background(), &models.CreateFirmRequest{})

	assert.Error(t, err)
	assert.Nil(t, firm)

	apiErr := sperrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, "MISSING_NAME", apiErr.Code)
}

func TestGetFirm_NotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)

	firm, err := service.GetFirm(context.Background(), "firm_missing")

	assert.Error(t, err)
	assert.Nil(t, firm)
	assert.Equal(t, sperrors.ErrorTypeNotFound, sperrors.GetAPIError(err).Type)
}

func TestGetAllFirms_SortedByName(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)
	ctx := context.Background()

	_, err := service.CreateFirm(ctx, &models.CreateFirmRequest{Name: "Zenith Works"})
	assert.NoError(t, err)
	_, err = service.CreateFirm(ctx, &models.CreateFirmRequest{Name: "Acme Safety"})
	assert.NoError(t, err)

	firms, err := service.GetAllFirms(ctx)

	assert.NoError(t, err)
	assert.Len(t, firms, 2)
	assert.Equal(t, "Acme Safety", firms[0].Name)
	assert.Equal(t, "Zenith Works", firms[1].Name)
}

func TestUpdateFirm_PartialUpdate(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)
	ctx := context.Background()

	created, err := service.CreateFirm(ctx, &models.CreateFirmRequest{
		Name:     "Acme Safety",
		Industry: "Construction",
	})
	assert.NoError(t, err)

	newName := "Acme Safety Group"
	updated, err := service.UpdateFirm(ctx, created.FirmID, &models.UpdateFirmRequest{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Safety Group", updated.Name)
	// Untouched fields survive the update
	assert.Equal(t, "Construction", updated.Industry)
}

func TestUpdateFirm_NotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)

	name := "Whatever"
	firm, err := service.UpdateFirm(context.Background(), "firm_missing", &models.UpdateFirmRequest{Name: &name})

	assert.Error(t, err)
	assert.Nil(t, firm)
	assert.Equal(t, sperrors.ErrorTypeNotFound, sperrors.GetAPIError(err).Type)
}

func TestDeleteFirm_LeavesEmployeeProfilesInPlace(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)
	ctx := context.Background()

	created, err := service.CreateFirm(ctx, &models.CreateFirmRequest{Name: "Acme Safety"})
	assert.NoError(t, err)

	profile := testProfile("idp_1")
	profile.FirmID = &created.FirmID
	assert.NoError(t, db.Create(profile).Error)

	assert.NoError(t, service.DeleteFirm(ctx, created.FirmID))

	// The employee row still exists with its now-dangling firm reference
	var stored models.Profile
	assert.NoError(t, db.First(&stored, "id = ?", "idp_1").Error)
	assert.Equal(t, created.FirmID, *stored.FirmID)
}

func TestDeleteFirm_NotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)

	err := service.DeleteFirm(context.Background(), "firm_missing")

	assert.Error(t, err)
	assert.Equal(t, sperrors.ErrorTypeNotFound, sperrors.GetAPIError(err).Type)
}

func TestGetFirmName_ResolvesName(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewFirmService(db)
	ctx := context.Background()

	created, err := service.CreateFirm(ctx, &models.CreateFirmRequest{Name: "Acme Safety"})
	assert.NoError(t, err)

	name, err := service.GetFirmName(ctx, created.FirmID)
	assert.NoError(t, err)
	assert.Equal(t, "Acme Safety", name)

	_, err = service.GetFirmName(ctx, "firm_missing")
	assert.Error(t, err)
}
