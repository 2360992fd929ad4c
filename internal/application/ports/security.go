package ports

import "github.com/VasudevKishan/todo-api/internal/domain"

// PasswordHasher hashes and verifies passwords (bcrypt or Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates the access and refresh JWTs. Each kind has its own secret.
type TokenIssuer interface {
	IssueAccessToken(userID domain.UserID, username string, roles []domain.Role) (string, error)
	IssueRefreshToken(userID domain.UserID) (string, error)
	// ValidateAccessToken fails with an error wrapping ErrInvalidToken.
	ValidateAccessToken(tokenString string) (*domain.Identity, error)
	ValidateRefreshToken(tokenString string) (domain.UserID, error)
}
