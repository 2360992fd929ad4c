package domain

import "fmt"

// Role is a flat permission label. There is no hierarchy between roles.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// DefaultRoles is assigned to newly registered users.
func DefaultRoles() []Role { return []Role{RoleUser} }

// ParseRoles validates names against the known roles and drops duplicates.
// The result is never empty.
func ParseRoles(names []string) ([]Role, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("roles must not be empty")
	}
	seen := make(map[Role]bool, len(names))
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r := Role(n)
		if r != RoleUser && r != RoleAdmin {
			return nil, fmt.Errorf("unknown role %q", n)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		roles = append(roles, r)
	}
	return roles, nil
}

// HasRole reports whether role is in roles.
func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleNames converts roles to strings.
func RoleNames(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
