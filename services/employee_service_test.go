package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/UncoreDigital/secure-place-api/models"
	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB, id, name, firmID string) {
	t.Helper()
	store := NewProfileStore(db)
	profile := testProfile(id)
	profile.FullName = name
	profile.FirmID = &firmID
	if err := store.WriteProfile(context.Background(), profile); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
}

func seedFirm(t *testing.T, db *gorm.DB, firmID, name string) {
	t.Helper()
	if err := db.Create(&models.Firm{FirmID: firmID, Name: name}).Error; err != nil {
		t.Fatalf("failed to seed firm: %v", err)
	}
}

func TestGetEmployee_ResolvesFirmName(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	provider := &fakeIDP{}
	service := NewEmployeeService(db, provider, NewProfileStore(db), NewFirmService(db))

	seedFirm(t, db, "firm_1", "Acme Safety")
	seedEmployee(t, db, "idp_1", "John Doe", "firm_1")

	employee, err := service.GetEmployee(context.Background(), superAdmin(), "idp_1")

	assert.NoError(t, err)
	assert.Equal(t, "John Doe", employee.Name)
	assert.Equal(t, "Acme Safety", employee.FirmName)
}

func TestGetEmployee_FirmScopedActor_CannotReadOtherFirm(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewEmployeeService(db, &fakeIDP{}, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_other")

	employee, err := service.GetEmployee(context.Background(), firmAdmin("firm_own"), "idp_1")

	assert.Error(t, err)
	assert.Nil(t, employee)
	assert.Equal(t, sperrors.ErrorTypeForbidden, sperrors.GetAPIError(err).Type)
}

func TestGetAllEmployees_FirmScopedActor_SeesOnlyOwnFirm(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewEmployeeService(db, &fakeIDP{}, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "Alice One", "firm_a")
	seedEmployee(t, db, "idp_2", "Bob Two", "firm_b")
	seedEmployee(t, db, "idp_3", "Carol Three", "firm_a")

	// The actor asks for firm_b but is scoped to firm_a
	otherFirm := "firm_b"
	employees, err := service.GetAllEmployees(context.Background(), firmAdmin("firm_a"), &otherFirm)

	assert.NoError(t, err)
	assert.Len(t, employees, 2)
	for _, e := range employees {
		assert.Equal(t, "firm_a", *e.FirmID)
	}
}

func TestGetAllEmployees_FirmScopedActor_WithoutFirm_IsRejected(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewEmployeeService(db, &fakeIDP{}, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "Alice One", "firm_a")
	seedEmployee(t, db, "idp_2", "Bob Two", "firm_b")

	// A firm admin without a firm must not fall through to an
	// unfiltered listing
	actor := &models.AuthenticatedUser{
		ID:    "admin_2",
		Email: "firmadmin@example.com",
		Role:  models.RoleFirmAdmin,
	}
	employees, err := service.GetAllEmployees(context.Background(), actor, nil)

	assert.Error(t, err)
	assert.Nil(t, employees)
	assert.Equal(t, sperrors.ErrorTypeForbidden, sperrors.GetAPIError(err).Type)
}

func TestGetAllEmployees_SuperAdmin_CanFilterAnyFirm(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewEmployeeService(db, &fakeIDP{}, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "Alice One", "firm_a")
	seedEmployee(t, db, "idp_2", "Bob Two", "firm_b")

	firmB := "firm_b"
	employees, err := service.GetAllEmployees(context.Background(), superAdmin(), &firmB)

	assert.NoError(t, err)
	assert.Len(t, employees, 1)
	assert.Equal(t, "Bob Two", employees[0].Name)
}

func TestUpdateEmployee_SyncsIdentityDisplayName(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	provider := &fakeIDP{}
	service := NewEmployeeService(db, provider, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_1")

	var updatedNames []string
	provider.UpdateUserFunc = func(ctx context.Context, userID string, update *idp.UserUpdate) (*idp.UserInfo, error) {
		if update.DisplayName != nil {
			updatedNames = append(updatedNames, *update.DisplayName)
		}
		return &idp.UserInfo{ID: userID}, nil
	}

	newName := "John Renamed"
	employee, err := service.UpdateEmployee(context.Background(), superAdmin(), "idp_1", &models.UpdateEmployeeRequest{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "John Renamed", employee.Name)
	assert.Equal(t, []string{"John Renamed"}, updatedNames)
}

func TestUpdateEmployee_NoNameChange_SkipsIdentityCall(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	var calls []string
	provider := &fakeIDP{calls: &calls}
	service := NewEmployeeService(db, provider, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_1")

	code := "EMP-42"
	employee, err := service.UpdateEmployee(context.Background(), superAdmin(), "idp_1", &models.UpdateEmployeeRequest{EmployeeCode: &code})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-42", employee.EmployeeCode)
	assert.NotContains(t, calls, "UpdateUser")
}

func TestUpdateEmployee_FirmMove_RequiresSuperAdmin(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewEmployeeService(db, &fakeIDP{}, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_a")

	// A firm admin's attempted move is silently ignored
	target := "firm_b"
	employee, err := service.UpdateEmployee(context.Background(), firmAdmin("firm_a"), "idp_1", &models.UpdateEmployeeRequest{FirmID: &target})

	assert.NoError(t, err)
	assert.Equal(t, "firm_a", *employee.FirmID)

	// A super admin's move takes effect
	employee, err = service.UpdateEmployee(context.Background(), superAdmin(), "idp_1", &models.UpdateEmployeeRequest{FirmID: &target})

	assert.NoError(t, err)
	assert.Equal(t, "firm_b", *employee.FirmID)
}

func TestDeleteEmployee_RemovesIdentityAndProfile(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	provider := &fakeIDP{}
	service := NewEmployeeService(db, provider, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_1")

	err := service.DeleteEmployee(context.Background(), superAdmin(), "idp_1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"idp_1"}, provider.deletedIDs)

	var count int64
	db.Model(&models.Profile{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteEmployee_IdentityFailure_IsFatal(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	provider := &fakeIDP{
		DeleteUserFunc: func(ctx context.Context, userID string) error {
			return errors.New("provider unavailable")
		},
	}
	service := NewEmployeeService(db, provider, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_1")

	err := service.DeleteEmployee(context.Background(), superAdmin(), "idp_1")

	assert.Error(t, err)
	assert.Equal(t, "IDENTITY_DELETION_FAILED", sperrors.GetAPIError(err).Code)

	// Profile stays when the identity could not be removed
	var count int64
	db.Model(&models.Profile{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteEmployee_FirmScopedActor_CannotDeleteOtherFirm(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	provider := &fakeIDP{}
	service := NewEmployeeService(db, provider, NewProfileStore(db), NewFirmService(db))

	seedEmployee(t, db, "idp_1", "John Doe", "firm_other")

	err := service.DeleteEmployee(context.Background(), firmAdmin("firm_own"), "idp_1")

	assert.Error(t, err)
	assert.Equal(t, sperrors.ErrorTypeForbidden, sperrors.GetAPIError(err).Type)
	assert.Empty(t, provider.deletedIDs)
}
