package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
	"github.com/fisiolab/tenslab-api/internal/service/lab"
	"github.com/fisiolab/tenslab-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, lab.ErrConfigNotFound),
		errors.Is(err, tissue.ErrPresetNotFound),
		errors.Is(err, domain.ErrInclusionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, lab.ErrInvalidParameters),
		errors.Is(err, lab.ErrInvalidConfig),
		errors.Is(err, lab.ErrNilSelection),
		errors.Is(err, domain.ErrInvalidStimulationMode),
		errors.Is(err, domain.ErrInvalidInclusionType),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, lab.ErrConfigNotFound),
		errors.Is(err, store.ErrTissueConfigNotFound):
		return "Tissue configuration not found"

	case errors.Is(err, tissue.ErrPresetNotFound):
		return "Tissue preset not found"

	case errors.Is(err, domain.ErrInclusionNotFound):
		return "Inclusion not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Tissue configuration already exists"

	case errors.Is(err, lab.ErrInvalidParameters),
		errors.Is(err, domain.ErrInvalidStimulationMode):
		return "Invalid stimulation parameters"

	case errors.Is(err, lab.ErrInvalidConfig),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid tissue configuration"

	case errors.Is(err, lab.ErrNilSelection):
		return "A tissue selection is required"

	case errors.Is(err, domain.ErrInvalidInclusionType):
		return "Invalid inclusion type"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError converts validator errors into a client-safe
// message listing only the offending field names, never the raw values.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Validation error"
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
	}

	if len(fields) == 0 {
		return "Validation error"
	}

	return fmt.Sprintf("Validation error on field(s): %s", strings.Join(fields, ", "))
}
