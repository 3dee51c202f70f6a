package handlers

import (
	"net/http"

	sperrors "github.com/UncoreDigital/secure-place-api/pkg/errors"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
)

// respondServiceError maps service-layer errors onto HTTP responses.
// APIError carries its own status code; anything else is a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	if apiErr := sperrors.GetAPIError(err); apiErr != nil {
		utils.RespondWithError(w, apiErr.HTTPStatus, apiErr.Message)
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}
