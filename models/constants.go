package models

// Role represents a user role within the platform
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleFirmAdmin  Role = "firm_admin"
	RoleEmployee   Role = "employee"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleFirmAdmin, RoleEmployee:
		return true
	}
	return false
}

// IsAdmin reports whether the role may access the admin surface
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleFirmAdmin
}

// FirmScoped reports whether the role is restricted to a single firm
func (r Role) FirmScoped() bool {
	return r == RoleFirmAdmin
}

// Field length constraints
const (
	MaxNameLength    = 255
	MaxEmailLength   = 320 // RFC 3696 specification
	MaxPhoneLength   = 15  // E.164 format
	MaxAddressLength = 1000
)
