package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
)

// AuthValidator validates the Bearer access token and sets the caller in
// context (see IdentityFromContext). It never touches the store.
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		id, err := m.issuer.ValidateAccessToken(tokenString)
		if err != nil {
			writeErr(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
