package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/leitner/internal/api/shared"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/service"
	"github.com/phrazzld/leitner/internal/service/practice"
	"github.com/phrazzld/leitner/internal/store"
)

// Safe messages returned to clients.
const (
	msgCardNotFound      = "Card not found"
	msgInvalidDifficulty = "Invalid difficulty value"
	msgMissingQuery      = "Missing or invalid query parameters"
	msgInvalidLimit      = "Invalid limit: must be an integer from 0 to 1000"
	msgInvalidRequest    = "Invalid request format"
	msgCardExists        = "Card already exists"
	msgInvalidCard       = "Front and back are required"
	msgInternal          = "Internal server error"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, practice.ErrCardNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrCardExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidCard),
		errors.Is(err, service.ErrEmptyImport),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return msgInternal
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, practice.ErrCardNotFound):
		return msgCardNotFound
	case errors.Is(err, store.ErrCardExists):
		return msgCardExists
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return msgInvalidDifficulty
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid card ID"
	case errors.Is(err, service.ErrInvalidCard),
		errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidCard
	case errors.Is(err, service.ErrEmptyImport):
		return "No cards to import"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	default:
		return msgInternal
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}

// SanitizeValidationError turns validator output into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", lowerFirst(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
