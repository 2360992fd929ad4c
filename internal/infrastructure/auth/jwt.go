package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

const (
	DefaultAccessTokenExpiry  = 15 * time.Minute
	DefaultRefreshTokenExpiry = 24 * time.Hour
)

// TokenIssuer implements ports.TokenIssuer with HS256 and separate secrets for
// access and refresh tokens.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessExp     time.Duration
	refreshExp    time.Duration
	now           func() time.Time
}

// TokenIssuerConfig holds the signing material and lifetimes.
type TokenIssuerConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// userInfo is the identity payload shared by both token kinds. Refresh tokens
// carry only UserID.
type userInfo struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

type tokenClaims struct {
	UserInfo userInfo `json:"userInfo"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(cfg TokenIssuerConfig) (*TokenIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh token secrets are required")
	}
	if cfg.AccessExpiry <= 0 {
		cfg.AccessExpiry = DefaultAccessTokenExpiry
	}
	if cfg.RefreshExpiry <= 0 {
		cfg.RefreshExpiry = DefaultRefreshTokenExpiry
	}
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		accessExp:     cfg.AccessExpiry,
		refreshExp:    cfg.RefreshExpiry,
		now:           time.Now,
	}, nil
}

func (t *TokenIssuer) IssueAccessToken(userID domain.UserID, username string, roles []domain.Role) (string, error) {
	return t.sign(t.accessSecret, t.accessExp, userInfo{
		UserID:   userID.String(),
		Username: username,
		Roles:    domain.RoleNames(roles),
	})
}

func (t *TokenIssuer) IssueRefreshToken(userID domain.UserID) (string, error) {
	return t.sign(t.refreshSecret, t.refreshExp, userInfo{UserID: userID.String()})
}

func (t *TokenIssuer) sign(secret []byte, exp time.Duration, info userInfo) (string, error) {
	now := t.now()
	claims := tokenClaims{
		UserInfo: info,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   info.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (t *TokenIssuer) ValidateAccessToken(tokenString string) (*domain.Identity, error) {
	claims, err := t.verify(tokenString, t.accessSecret)
	if err != nil {
		return nil, err
	}
	if claims.UserInfo.Username == "" || len(claims.UserInfo.Roles) == 0 {
		return nil, fmt.Errorf("%w: missing identity claims", domerrors.ErrInvalidToken)
	}
	userID, err := domain.ParseUserID(claims.UserInfo.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id", domerrors.ErrInvalidToken)
	}
	roles, err := domain.ParseRoles(claims.UserInfo.Roles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrInvalidToken, err)
	}
	return &domain.Identity{UserID: userID, Username: claims.UserInfo.Username, Roles: roles}, nil
}

func (t *TokenIssuer) ValidateRefreshToken(tokenString string) (domain.UserID, error) {
	claims, err := t.verify(tokenString, t.refreshSecret)
	if err != nil {
		return domain.UserID{}, err
	}
	userID, err := domain.ParseUserID(claims.UserInfo.UserID)
	if err != nil {
		return domain.UserID{}, fmt.Errorf("%w: malformed user id", domerrors.ErrInvalidToken)
	}
	return userID, nil
}

// verify checks signature, algorithm, issuer and expiry. Every failure wraps
// ErrInvalidToken; expiry is reported distinctly in the message only.
func (t *TokenIssuer) verify(tokenString string, secret []byte) (*tokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", domerrors.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", domerrors.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", domerrors.ErrInvalidToken)
	}
	if claims.UserInfo.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId claim", domerrors.ErrInvalidToken)
	}
	return claims, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
