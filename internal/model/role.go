package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is an ordered privilege tier for admin accounts. Higher values carry
// strictly more capability, so a minimum-role check is a single comparison.
type Role int

const (
	// RoleAdmin can manage site content (solutions, products, news, ...).
	RoleAdmin Role = iota + 1
	// RoleSuperAdmin can additionally create and list admin accounts.
	RoleSuperAdmin
)

const (
	roleAdminName      = "admin"
	roleSuperAdminName = "super_admin"
)

// ParseRole converts a wire-format role name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleAdminName:
		return RoleAdmin, nil
	case roleSuperAdminName:
		return RoleSuperAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdminName
	case RoleSuperAdmin:
		return roleSuperAdminName
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Meets reports whether r satisfies a minimum-role requirement.
func (r Role) Meets(min Role) bool {
	return r >= min
}

// MarshalJSON encodes the role as its wire-format name.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a wire-format role name.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as its name so database rows stay readable.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot store invalid role %d", int(r))
	}
	return r.String(), nil
}

// Scan reads a role name from a database column.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseRole(v)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	case []byte:
		parsed, err := ParseRole(string(v))
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan role from %T", src)
	}
}
