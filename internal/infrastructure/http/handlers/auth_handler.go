package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/VasudevKishan/todo-api/internal/application/auth"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
)

const RefreshCookieName = "jwt"

// CookieConfig controls the refresh token cookie. MaxAge is in seconds.
type CookieConfig struct {
	Secure bool
	MaxAge int
}

type AuthHandler struct {
	login    *auth.Login
	refresh  *auth.Refresh
	whoami   *auth.WhoAmI
	cookie   CookieConfig
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(login *auth.Login, refresh *auth.Refresh, whoami *auth.WhoAmI, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		login:    login,
		refresh:  refresh,
		whoami:   whoami,
		cookie:   cookie,
		validate: newValidator(),
		log:      log,
	}
}

func (h *AuthHandler) refreshCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}

// Login handles POST /auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"max=64"`
		Password string `json:"password" validate:"max=128"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		writeDomainErr(w, h.log, "login", err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	http.SetCookie(w, h.refreshCookie(result.RefreshToken, h.cookie.MaxAge))
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": result.AccessToken})
}

// Refresh handles GET /auth/refresh using the refresh cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(RefreshCookieName); err == nil {
		token = c.Value
	}
	if oversizedToken(token) {
		AuditLog(h.log, r, "auth.refresh", "", false, "oversized refresh cookie")
		writeErr(w, http.StatusForbidden, "Forbidden")
		return
	}
	result, err := h.refresh.Execute(r.Context(), auth.RefreshInput{RefreshToken: token})
	if err != nil {
		AuditLog(h.log, r, "auth.refresh", "", false, err.Error())
		writeDomainErr(w, h.log, "refresh", err)
		return
	}
	AuditLog(h.log, r, "auth.refresh", result.User.ID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": result.AccessToken})
}

// Logout clears the refresh cookie. Without a cookie there is nothing to do.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(RefreshCookieName); errors.Is(err, http.ErrNoCookie) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.SetCookie(w, h.refreshCookie("", -1))
	AuditLog(h.log, r, "user.logout", "", true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cookie cleared"})
}

// Me returns the current user. Requires AuthValidator middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.whoami.Execute(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		writeDomainErr(w, h.log, "whoami", err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(user))
}
