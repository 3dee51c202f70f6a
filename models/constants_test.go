package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsValid())
	assert.True(t, RoleFirmAdmin.IsValid())
	assert.True(t, RoleEmployee.IsValid())
	assert.False(t, Role("owner").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.True(t, RoleFirmAdmin.IsAdmin())
	assert.False(t, RoleEmployee.IsAdmin())
}

func TestRole_FirmScoped(t *testing.T) {
	assert.False(t, RoleSuperAdmin.FirmScoped())
	assert.True(t, RoleFirmAdmin.FirmScoped())
	assert.False(t, RoleEmployee.FirmScoped())
}

func TestAuthenticatedUser_CanAccessFirm(t *testing.T) {
	firmA := "firm_a"

	super := &AuthenticatedUser{Role: RoleSuperAdmin}
	assert.True(t, super.CanAccessFirm("firm_a"))
	assert.True(t, super.CanAccessFirm("firm_b"))

	admin := &AuthenticatedUser{Role: RoleFirmAdmin, FirmID: &firmA}
	assert.True(t, admin.CanAccessFirm("firm_a"))
	assert.False(t, admin.CanAccessFirm("firm_b"))

	noFirm := &AuthenticatedUser{Role: RoleFirmAdmin}
	assert.False(t, noFirm.CanAccessFirm("firm_a"))

	employee := &AuthenticatedUser{Role: RoleEmployee, FirmID: &firmA}
	assert.False(t, employee.CanAccessFirm("firm_a"))
}
