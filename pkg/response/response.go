// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/maxviazov/buddyfinder-service/internal/service"
)

// Error codes carried in the envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// Detail markers layered on top of the codes above.
const (
	DetailProfileIncomplete = "PROFILE_INCOMPLETE"
	DetailProfileNotFound   = "PROFILE_NOT_FOUND"
	DetailSportNotFound     = "SPORT_NOT_FOUND"
	DetailDuplicateSport    = "DUPLICATE_SPORT"
	DetailConflict          = "CONFLICT"
)

// ErrorBody is the inner object of the error envelope. Details is either a marker string
// or the list of field errors.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error ErrorBody `json:"error"`
}

func payload(code, message string, details any) ErrorPayload {
	return ErrorPayload{Error: ErrorBody{Code: code, Message: message, Details: details}}
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{}
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		var details any
		if fe := service.FieldErrors(err); len(fe) > 0 {
			details = fe
		}
		return http.StatusBadRequest, payload(CodeValidation, "one or more fields are invalid", details)
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, payload(CodeValidation, err.Error(), nil)
	case errors.Is(err, service.ErrIncompleteProfile):
		return http.StatusBadRequest, payload(CodeValidation, model.MissingProfileMessage, DetailProfileIncomplete)
	case errors.Is(err, service.ErrDuplicateSport):
		return http.StatusBadRequest, payload(CodeValidation, "sport is already on your profile", DetailDuplicateSport)
	case errors.Is(err, repository.ErrAlreadyExists), errors.Is(err, repository.ErrConflict):
		return http.StatusBadRequest, payload(CodeValidation, "request conflicts with existing data", DetailConflict)
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, payload(CodeUnauthorized, "authentication required", nil)
	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound, payload(CodeNotFound, "profile not found", DetailProfileNotFound)
	case errors.Is(err, service.ErrSportNotFound):
		return http.StatusNotFound, payload(CodeNotFound, "sport not found", DetailSportNotFound)
	case errors.Is(err, service.ErrUserSportNotFound):
		return http.StatusNotFound, payload(CodeNotFound, "sport not found in your profile", DetailSportNotFound)
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, payload(CodeNotFound, "resource not found", nil)
	default:
		return http.StatusInternalServerError, payload(CodeInternal, "an unexpected error occurred", nil)
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, body := MapError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
