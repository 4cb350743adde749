package domain

import "time"

// RoleName is the closed set of role identifiers.
type RoleName string

const (
	RoleUser       RoleName = "USER"
	RoleAdmin      RoleName = "ADMIN"
	RoleSuperAdmin RoleName = "SUPER_ADMIN"
)

// Valid reports whether n is one of the known role names.
func (n RoleName) Valid() bool {
	switch n {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Role is a registered role record. The set of valid names is fixed; the
// records exist so signup can attach the stored role (description included)
// to new users.
type Role struct {
	ID          string    `json:"id"`
	Name        RoleName  `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
