package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/UncoreDigital/secure-place-api/middleware"
	"github.com/UncoreDigital/secure-place-api/models"
	"github.com/UncoreDigital/secure-place-api/services"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
)

// EmployeeHandler handles all employee API routes
type EmployeeHandler struct {
	provisioningService *services.ProvisioningService
	employeeService     *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(provisioning *services.ProvisioningService, employees *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		provisioningService: provisioning,
		employeeService:     employees,
	}
}

// SetupEmployeeRoutes configures the employee API routes
func (h *EmployeeHandler) SetupEmployeeRoutes(mux *http.ServeMux) {
	mux.Handle("/api/v1/employees", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEmployees)))
	mux.Handle("/api/v1/employees/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEmployees)))
}

// handleEmployees handles employee-related routes
func (h *EmployeeHandler) handleEmployees(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/employees")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/employees and POST /api/v1/employees
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getAllEmployees(w, r)
		case http.MethodPost:
			h.provisionEmployee(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	employeeID := parts[0]

	// Handle base employee endpoint: GET/PUT/DELETE /api/v1/employees/:employeeId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getEmployee(w, r, employeeID)
		case http.MethodPut:
			h.updateEmployee(w, r, employeeID)
		case http.MethodDelete:
			h.deleteEmployee(w, r, employeeID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// provisionEmployee runs the full provisioning workflow for a new employee
func (h *EmployeeHandler) provisionEmployee(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.provisioningService.ProvisionEmployee(r.Context(), actor, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

func (h *EmployeeHandler) getAllEmployees(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var firmFilter *string
	if firmID := r.URL.Query().Get("firmId"); firmID != "" {
		firmFilter = &firmID
	}

	employees, err := h.employeeService.GetAllEmployees(r.Context(), actor, firmFilter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response := models.CollectionResponse{
		Items: employees,
		Count: len(employees),
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *EmployeeHandler) getEmployee(w http.ResponseWriter, r *http.Request, employeeID string) {
	actor, err := middleware.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	employee, err := h.employeeService.GetEmployee(r.Context(), actor, employeeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) updateEmployee(w http.ResponseWriter, r *http.Request, employeeID string) {
	actor, err := middleware.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(r.Context(), actor, employeeID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) deleteEmployee(w http.ResponseWriter, r *http.Request, employeeID string) {
	actor, err := middleware.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), actor, employeeID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
