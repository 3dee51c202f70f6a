package models

// Request/Response DTOs for the admin API endpoints

// CreateEmployeeRequest is the form input for the employee provisioning workflow
type CreateEmployeeRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required"`
	EmployeeCode  *string `json:"employeeCode,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	IsVolunteer   bool    `json:"isVolunteer"`
	FirmID        *string `json:"firmId,omitempty"`
}

type UpdateEmployeeRequest struct {
	Name          *string `json:"name,omitempty"`
	EmployeeCode  *string `json:"employeeCode,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	IsVolunteer   *bool   `json:"isVolunteer,omitempty"`
	FirmID        *string `json:"firmId,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Role          Role    `json:"role"`
	EmployeeCode  string  `json:"employeeCode,omitempty"`
	ContactNumber string  `json:"contactNumber,omitempty"`
	IsVolunteer   bool    `json:"isVolunteer"`
	FirmID        *string `json:"firmId,omitempty"`
	FirmName      string  `json:"firmName,omitempty"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ProvisioningResult reports the outcome of a successful provisioning
// run. NotificationWarning carries the welcome-email failure text when
// delivery failed; employee creation is still reported as success.
type ProvisioningResult struct {
	Employee            *EmployeeResponse `json:"employee"`
	NotificationSent    bool              `json:"notificationSent"`
	NotificationWarning string            `json:"notificationWarning,omitempty"`
}

// CreateFirmRequest Firm DTOs
type CreateFirmRequest struct {
	Name         string `json:"name" validate:"required"`
	Industry     string `json:"industry,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

type UpdateFirmRequest struct {
	Name         *string `json:"name,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// CollectionResponse wraps list endpoints
type CollectionResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

type FirmResponse struct {
	FirmID       string `json:"firmId"`
	Name         string `json:"name"`
	Industry     string `json:"industry,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}
