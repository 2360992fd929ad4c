package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

// writeErr sends JSON { "message": message }.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse maps a use case error to a status and client message.
// ok is false for errors that are not part of the domain.
func errorResponse(err error) (code int, message string, ok bool) {
	var verr *domerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message, true
	case errors.Is(err, domerrors.ErrInvalidCredentials), errors.Is(err, domerrors.ErrTokenMissing):
		return http.StatusUnauthorized, "Unauthorized", true
	case errors.Is(err, domerrors.ErrInvalidToken), errors.Is(err, domerrors.ErrForbidden):
		return http.StatusForbidden, "Forbidden", true
	case errors.Is(err, domerrors.ErrUserNotFound):
		return http.StatusNotFound, "User not found", true
	case errors.Is(err, domerrors.ErrTodoNotFound):
		return http.StatusNotFound, "Todo not found", true
	case errors.Is(err, domerrors.ErrProjectNotFound):
		return http.StatusBadRequest, "Project not found!", true
	case errors.Is(err, domerrors.ErrUserExists):
		return http.StatusConflict, "Duplicate username", true
	case errors.Is(err, domerrors.ErrEmailExists):
		return http.StatusConflict, "Duplicate email", true
	case errors.Is(err, domerrors.ErrProjectExists):
		return http.StatusConflict, "Duplicate Project Name", true
	case errors.Is(err, domerrors.ErrUserHasProjects):
		return http.StatusBadRequest, "User has projects, delete them before deleting the user", true
	case errors.Is(err, domerrors.ErrProjectHasTodos):
		return http.StatusBadRequest, "Delete Todos under this project to delete the project", true
	case errors.Is(err, domerrors.ErrValidation):
		return http.StatusBadRequest, "Invalid request", true
	}
	return http.StatusInternalServerError, "internal error", false
}

// writeDomainErr writes the mapped error; unexpected errors are logged.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, op string, err error) {
	code, msg, ok := errorResponse(err)
	if !ok {
		log.Error().Err(err).Str("op", op).Msg("request failed")
	}
	writeErr(w, code, msg)
}
