package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/UncoreDigital/secure-place-api/models"
	"github.com/UncoreDigital/secure-place-api/services"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
)

// FirmHandler handles all firm API routes
type FirmHandler struct {
	firmService *services.FirmService
}

// NewFirmHandler creates a new firm handler
func NewFirmHandler(firms *services.FirmService) *FirmHandler {
	return &FirmHandler{firmService: firms}
}

// SetupFirmRoutes configures the firm API routes
func (h *FirmHandler) SetupFirmRoutes(mux *http.ServeMux) {
	mux.Handle("/api/v1/firms", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleFirms)))
	mux.Handle("/api/v1/firms/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleFirms)))
}

// handleFirms handles firm-related routes
func (h *FirmHandler) handleFirms(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/firms")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/firms and POST /api/v1/firms
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getAllFirms(w, r)
		case http.MethodPost:
			h.createFirm(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Firm ID is required")
		return
	}

	firmID := parts[0]

	// Handle base firm endpoint: GET/PUT/DELETE /api/v1/firms/:firmId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getFirm(w, r, firmID)
		case http.MethodPut:
			h.updateFirm(w, r, firmID)
		case http.MethodDelete:
			h.deleteFirm(w, r, firmID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *FirmHandler) createFirm(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	firm, err := h.firmService.CreateFirm(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, firm)
}

func (h *FirmHandler) getAllFirms(w http.ResponseWriter, r *http.Request) {
	firms, err := h.firmService.GetAllFirms(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response := models.CollectionResponse{
		Items: firms,
		Count: len(firms),
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *FirmHandler) getFirm(w http.ResponseWriter, r *http.Request, firmID string) {
	firm, err := h.firmService.GetFirm(r.Context(), firmID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, firm)
}

func (h *FirmHandler) updateFirm(w http.ResponseWriter, r *http.Request, firmID string) {
	var req models.UpdateFirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	firm, err := h.firmService.UpdateFirm(r.Context(), firmID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, firm)
}

func (h *FirmHandler) deleteFirm(w http.ResponseWriter, r *http.Request, firmID string) {
	if err := h.firmService.DeleteFirm(r.Context(), firmID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
