package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_ErrorFormatting(t *testing.T) {
	err := ValidationError("MISSING_NAME", "Employee name is required")
	assert.Equal(t, "Employee name is required (MISSING_NAME)", err.Error())

	err.Details = "name field was blank"
	assert.Equal(t, "Employee name is required: name field was blank (MISSING_NAME)", err.Error())
}

func TestAPIError_UnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := IdentityCreationError(cause)

	assert.ErrorIs(t, err, cause)
}

func TestGetAPIError_ThroughWrapping(t *testing.T) {
	inner := ProfileWriteError(errors.New("insert failed"))
	wrapped := fmt.Errorf("provisioning failed: %w", inner)

	apiErr := GetAPIError(wrapped)
	assert.NotNil(t, apiErr)
	assert.Equal(t, "PROFILE_WRITE_FAILED", apiErr.Code)

	assert.Nil(t, GetAPIError(errors.New("plain error")))
	assert.False(t, IsAPIError(errors.New("plain error")))
	assert.True(t, IsAPIError(inner))
}

func TestConstructors_StatusAndStage(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		status int
		stage  Stage
	}{
		{"validation", ValidationError("CODE", "msg"), http.StatusBadRequest, StageValidation},
		{"not found", NotFoundError("profile"), http.StatusNotFound, ""},
		{"conflict", ConflictError("already exists"), http.StatusConflict, ""},
		{"forbidden", ForbiddenError("nope"), http.StatusForbidden, ""},
		{"identity create", IdentityCreationError(errors.New("x")), http.StatusBadGateway, StageIdentity},
		{"identity delete", IdentityDeletionError(errors.New("x")), http.StatusBadGateway, StageIdentity},
		{"profile write", ProfileWriteError(errors.New("x")), http.StatusInternalServerError, StageProfile},
		{"notification", NotificationError(errors.New("x")), http.StatusServiceUnavailable, StageNotify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.stage, tt.err.Stage)
		})
	}
}

func TestStageOf(t *testing.T) {
	assert.Equal(t, StageProfile, StageOf(ProfileWriteError(errors.New("x"))))
	assert.Equal(t, Stage(""), StageOf(errors.New("plain error")))
}
