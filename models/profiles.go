package models

// Profile represents the primary profile table. The row id equals the
// identity id issued by the identity provider (shared primary key).
type Profile struct {
	ID            string  `gorm:"primarykey;column:id" json:"id"`
	FullName      string  `gorm:"column:full_name;not null" json:"fullName"`
	Email         string  `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Role          Role    `gorm:"column:role;not null" json:"role"`
	EmployeeCode  string  `gorm:"column:employee_code" json:"employeeCode,omitempty"`
	ContactNumber string  `gorm:"column:contact_number" json:"contactNumber,omitempty"`
	IsVolunteer   bool    `gorm:"column:is_volunteer;default:false" json:"isVolunteer"`
	FirmID        *string `gorm:"column:firm_id" json:"firmId,omitempty"`
	IsActive      bool    `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// UserProfile is the legacy compatibility mirror of Profile. It is a
// denormalized convenience copy, not a source of truth; writes to it
// are best-effort.
type UserProfile struct {
	ID            string  `gorm:"primarykey;column:id" json:"id"`
	FirstName     string  `gorm:"column:first_name" json:"firstName"`
	LastName      string  `gorm:"column:last_name" json:"lastName"`
	OfficialEmail string  `gorm:"column:official_email" json:"officialEmail"`
	Role          Role    `gorm:"column:role" json:"role"`
	EmployeeCode  string  `gorm:"column:employee_code" json:"employeeCode,omitempty"`
	ContactNumber string  `gorm:"column:contact_number" json:"contactNumber,omitempty"`
	IsVolunteer   bool    `gorm:"column:is_volunteer;default:false" json:"isVolunteer"`
	FirmID        *string `gorm:"column:firm_id" json:"firmId,omitempty"`
	IsActive      bool    `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}

// Firm represents a tenant organization
type Firm struct {
	FirmID       string `gorm:"primarykey;column:firm_id" json:"firmId"`
	Name         string `gorm:"column:name;not null" json:"name"`
	Industry     string `gorm:"column:industry" json:"industry,omitempty"`
	ContactEmail string `gorm:"column:contact_email" json:"contactEmail,omitempty"`
	Phone        string `gorm:"column:phone" json:"phone,omitempty"`
	Address      string `gorm:"column:address" json:"address,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Firm) TableName() string {
	return "firms"
}
