package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrValidation         = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenMissing       = errors.New("token missing")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTodoNotFound    = errors.New("todo not found")

	ErrUserExists    = errors.New("duplicate username")
	ErrEmailExists   = errors.New("duplicate email")
	ErrProjectExists = errors.New("duplicate project name")

	ErrUserHasProjects = errors.New("user has projects")
	ErrProjectHasTodos = errors.New("project has todos")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns a ValidationError with msg.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}
