package response

import (
	"errors"
	"net/http"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/auth"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/user"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/csrf"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserIDRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, csrf.ErrMissingToken), errors.Is(err, csrf.ErrTokenMismatch):
		Forbidden(w, "CSRF verification failed: "+err.Error())

	// Bulk
	case errors.Is(err, bulk.ErrEmptySelection):
		BadRequest(w, "No rows selected", nil)
	case errors.Is(err, bulk.ErrUnknownEntity):
		NotFound(w, "Entity not found")
	case errors.Is(err, bulk.ErrActionNotSupported):
		MethodNotAllowed(w, err.Error())
	case errors.Is(err, bulk.ErrUnknownFilterColumn):
		BadRequest(w, err.Error(), nil)

	// Selection
	case errors.Is(err, selection.ErrMalformedIDs):
		BadRequest(w, "Malformed ids", nil)
	case errors.Is(err, selection.ErrScopeNotFound):
		NotFound(w, "Selection scope not found")
	case errors.Is(err, selection.ErrScopeForbidden):
		Forbidden(w, "Selection scope belongs to another user")
	case errors.Is(err, selection.ErrUnknownView):
		NotFound(w, "List view not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
