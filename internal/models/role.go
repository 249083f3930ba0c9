package models

import "fmt"

// Role is the access level stored on a user record and carried in token
// claims. The hierarchy is strict: ADMIN satisfies every requirement USER
// does, the converse does not hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Satisfies reports whether a principal holding role r meets the given
// requirement. This is the single source of truth for the role hierarchy.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

func (r Role) String() string { return string(r) }
