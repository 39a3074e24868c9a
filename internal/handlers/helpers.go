package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// parsePathID reads a UUID path parameter. A malformed ID cannot name an
// existing record, so it is reported with the caller's not-found error.
func parsePathID(c *gin.Context, param string, notFound *apperrors.AppError) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if !uuid.IsValid(id) {
		return "", notFound
	}
	return uuid.Canonical(id), nil
}

// optionalQuery returns a pointer to the query value, or nil when absent.
func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// bindError converts a gin binding failure into a validation error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic storage error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrStorage.StatusCode, ErrorResponse{
		Error: ErrorDetail{Code: apperrors.ErrStorage.Code, Message: apperrors.ErrStorage.Message},
	})
}
