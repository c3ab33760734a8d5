package domain

import "fmt"

// Role is the console role carried in the bearer token.
type Role string

const (
	RoleMember         Role = "member"
	RoleReleaseManager Role = "release_manager"
	RoleAdmin          Role = "admin"
)

var roleRank = map[Role]int{
	RoleMember:         1,
	RoleReleaseManager: 2,
	RoleAdmin:          3,
}

// ParseRole maps a raw claim value onto the closed role set.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries every capability of other.
func (r Role) AtLeast(other Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[other]
}

// IsReleaseManager is true for release managers and admins.
func (r Role) IsReleaseManager() bool {
	return r.AtLeast(RoleReleaseManager)
}

// IsAdmin is true only for admins.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
