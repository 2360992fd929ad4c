package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	authmw "github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
)

// AuditLog logs an auth event and counts it in the auth attempts metric.
func AuditLog(log zerolog.Logger, r *http.Request, event string, userID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("user_id", userID).
		Str("ip", r.RemoteAddr).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
	authmw.RecordAuthAttempt(event, success)
}
