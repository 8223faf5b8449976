package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub-io/studenthub/internal/auth"
	"github.com/studenthub-io/studenthub/internal/common"
)

// statusFor maps the application error taxonomy onto HTTP statuses.
// SchemaViolation is a bad upstream answer (502), BackendUnavailable a
// failed upstream call (503); everything persisted-side is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrUnsupportedFileType),
		errors.Is(err, common.ErrEncoding):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrSchemaViolation):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
