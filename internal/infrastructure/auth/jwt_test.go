package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

const (
	testAccessSecret  = "access-test-secret"
	testRefreshSecret = "refresh-test-secret"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	iss, err := NewTokenIssuer(TokenIssuerConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		Issuer:        "todo-api",
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return iss
}

func TestNewTokenIssuer_RequiresSecrets(t *testing.T) {
	if _, err := NewTokenIssuer(TokenIssuerConfig{AccessSecret: "x"}); err == nil {
		t.Fatal("expected error without refresh secret")
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	iss := newTestIssuer(t)
	userID := domain.NewUserID(uuid.New())
	tok, err := iss.IssueAccessToken(userID, "alice", []domain.Role{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	id, err := iss.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if id.UserID != userID || id.Username != "alice" || !id.HasRole(domain.RoleAdmin) {
		t.Fatalf("identity mismatch: %+v", id)
	}
}

func TestAccessToken_ExpiresAfterFifteenMinutes(t *testing.T) {
	iss := newTestIssuer(t)
	issuedAt := time.Now()
	iss.now = func() time.Time { return issuedAt }
	tok, err := iss.IssueAccessToken(domain.NewUserID(uuid.New()), "bob", domain.DefaultRoles())
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	iss.now = func() time.Time { return issuedAt.Add(14 * time.Minute) }
	if _, err := iss.ValidateAccessToken(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}
	iss.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	_, err = iss.ValidateAccessToken(tok)
	if !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry to be reported, got %v", err)
	}
}

func TestAccessToken_Tampered(t *testing.T) {
	iss := newTestIssuer(t)
	tok, err := iss.IssueAccessToken(domain.NewUserID(uuid.New()), "carol", domain.DefaultRoles())
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	parts := strings.Split(tok, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	if _, err := iss.ValidateAccessToken(strings.Join(parts, ".")); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
	if _, err := iss.ValidateAccessToken("not-a-jwt"); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestRefreshToken_NotAcceptedAsAccessToken(t *testing.T) {
	iss := newTestIssuer(t)
	userID := domain.NewUserID(uuid.New())
	refresh, err := iss.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	got, err := iss.ValidateRefreshToken(refresh)
	if err != nil || got != userID {
		t.Fatalf("ValidateRefreshToken: %v %v", got, err)
	}
	if _, err := iss.ValidateAccessToken(refresh); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("refresh token must not validate as access token, got %v", err)
	}
}

func TestRefreshToken_DefaultExpiryIsOneDay(t *testing.T) {
	iss := newTestIssuer(t)
	issuedAt := time.Now()
	iss.now = func() time.Time { return issuedAt }
	tok, err := iss.IssueRefreshToken(domain.NewUserID(uuid.New()))
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	iss.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	if _, err := iss.ValidateRefreshToken(tok); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected expired refresh token, got %v", err)
	}
}

func TestVerify_RejectsMissingClaimShape(t *testing.T) {
	iss := newTestIssuer(t)
	claims := jwt.MapClaims{
		"iss": "todo-api",
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := iss.ValidateAccessToken(tok); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing userInfo, got %v", err)
	}

	claims["userInfo"] = map[string]interface{}{"userId": uuid.NewString()}
	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := iss.ValidateAccessToken(tok); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token without username/roles, got %v", err)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	iss := newTestIssuer(t)
	claims := jwt.MapClaims{
		"iss":      "todo-api",
		"exp":      time.Now().Add(time.Minute).Unix(),
		"userInfo": map[string]interface{}{"userId": uuid.NewString(), "username": "eve", "roles": []string{"Admin"}},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := iss.ValidateAccessToken(tok); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected HS512 token to be rejected, got %v", err)
	}
}
