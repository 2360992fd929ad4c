package user

import (
	"regexp"
	"strings"

	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", domerrors.Invalid("Invalid email")
	}
	return email, nil
}

func checkPassword(password string) error {
	if len(password) < MinPasswordLength {
		return domerrors.Invalid("Password must be at least 8 characters")
	}
	if len(password) > MaxPasswordBytes {
		return domerrors.Invalid("Password must be at most 72 bytes")
	}
	return nil
}
