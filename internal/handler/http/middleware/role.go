package middleware

import (
	"fmt"
	"net/http"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/user"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/response"
)

// Authorize answers 403 and returns false when principal's role lacks permission.
func Authorize(w http.ResponseWriter, principal user.Principal, permission user.Permission) bool {
	if principal.Can(permission) {
		return true
	}
	if principal.Role == "" {
		response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
		return false
	}
	response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, principal.Role))
	return false
}

// RequirePermission guards a route group with one permission. Routes whose
// permission depends on the request, like the bulk endpoints, call Authorize.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !Authorize(w, principal, permission) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
