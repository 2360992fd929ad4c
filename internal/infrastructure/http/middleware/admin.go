package middleware

import (
	"net/http"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

// RequireRole rejects callers whose token does not carry role. Use after
// AuthValidator.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			if id == nil {
				writeErr(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !id.HasRole(role) {
				writeErr(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
