package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

// Execute verifies the credentials and issues both tokens. Unknown usernames
// and wrong passwords fail identically with ErrInvalidCredentials.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domerrors.Invalid("All fields are required")
	}
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Spend the same hashing work as a real comparison.
		uc.hasher.Verify(input.Password, uc.dummy())
		return nil, domerrors.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	accessToken, err := uc.issuer.IssueAccessToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (uc *Login) dummy() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.hasher.Hash("not-a-real-password")
	})
	return uc.dummyHash
}
