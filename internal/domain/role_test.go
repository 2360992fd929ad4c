package domain

import (
	"testing"

	"github.com/google/uuid"

	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles([]string{"Admin", "User", "Admin"})
	if err != nil {
		t.Fatalf("ParseRoles: %v", err)
	}
	if len(roles) != 2 || roles[0] != RoleAdmin || roles[1] != RoleUser {
		t.Fatalf("unexpected roles: %v", roles)
	}
	if _, err := ParseRoles(nil); err == nil {
		t.Fatal("expected error for empty roles")
	}
	if _, err := ParseRoles([]string{"Root"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestCheckOwner(t *testing.T) {
	a := NewUserID(uuid.New())
	b := NewUserID(uuid.New())
	if err := CheckOwner(a, a); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if err := CheckOwner(a, b); err != domerrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestIdentityHasRole(t *testing.T) {
	var nilIdentity *Identity
	if nilIdentity.HasRole(RoleUser) {
		t.Fatal("nil identity has no roles")
	}
	id := &Identity{Roles: []Role{RoleUser}}
	if !id.HasRole(RoleUser) || id.HasRole(RoleAdmin) {
		t.Fatalf("unexpected role check for %+v", id)
	}
}
