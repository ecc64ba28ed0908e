package actor

import (
	"fmt"

	"repair/internal/pkg/errs"
)

// Role is the closed set of actor kinds. Authorization code switches over it
// exhaustively, so adding a role forces every decision point to be revisited.
type Role int

const (
	// RoleUnknown catches uninitialized values.
	RoleUnknown Role = iota
	RoleClient
	RoleService
	RolePVZ
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleClient:  "client",
		RoleService: "service",
		RolePVZ:     "pvz",
		RoleAdmin:   "admin",
	}
}

// ParseRole converts the wire/storage name back into a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
