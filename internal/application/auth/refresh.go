package auth

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type RefreshInput struct {
	RefreshToken string
}

type RefreshResult struct {
	AccessToken string
	User        *domain.User
}

// Refresh exchanges a refresh token for a new access token carrying the
// user's current username and roles. The password is not re-checked.
type Refresh struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

func NewRefresh(users ports.UserRepository, issuer ports.TokenIssuer) *Refresh {
	return &Refresh{users: users, issuer: issuer}
}

func (uc *Refresh) Execute(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	if input.RefreshToken == "" {
		return nil, domerrors.ErrTokenMissing
	}
	userID, err := uc.issuer.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidCredentials
	}
	accessToken, err := uc.issuer.IssueAccessToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{AccessToken: accessToken, User: user}, nil
}
