// Package server provides the HTTP API for building and exporting CVs.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/cv-genie/internal/builder"
	"github.com/jonathan/cv-genie/internal/export"
	"github.com/jonathan/cv-genie/internal/schemas"
)

// ErrSessionNotFound indicates the session id is unknown
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound  *ErrSessionNotFound
		invalid   *ErrValidation
		schemaErr *schemas.ValidationError
		fieldsErr validator.ValidationErrors
		exportErr *export.ExportError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &schemaErr), errors.As(err, &fieldsErr):
		return http.StatusBadRequest
	case errors.Is(err, builder.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationError turns validator output into an ErrValidation for the first
// failing field.
func validationError(err error) error {
	var fieldsErr validator.ValidationErrors
	if errors.As(err, &fieldsErr) && len(fieldsErr) > 0 {
		fe := fieldsErr[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
