package response

import (
	"errors"
	"net/http"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/auth"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// Catalog configuration errors
	case errors.Is(err, catalog.ErrCompanyNotConfigured):
		NotFound(w, "Company is not configured in the rule catalog")
	case errors.Is(err, catalog.ErrMissingExternalID):
		BadRequest(w, "Company has no external system identifier configured", nil)
	case errors.Is(err, catalog.ErrNoStatutoryTable):
		BadRequest(w, "No statutory table configured for the competence year", nil)
	case errors.Is(err, catalog.ErrInvalidEventCode):
		BadRequest(w, "Event code is not a valid numeric code", nil)

	// Audit run errors
	case errors.Is(err, advance.ErrRunNotFound):
		NotFound(w, "Audit run not found")
	case errors.Is(err, advance.ErrNoEmployees):
		NotFound(w, "No employees found for the competence month")
	case errors.Is(err, taxaudit.ErrRunNotFound):
		NotFound(w, "Audit run not found")
	case errors.Is(err, taxaudit.ErrNoEvents):
		NotFound(w, "No payroll events found for the competence month")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
