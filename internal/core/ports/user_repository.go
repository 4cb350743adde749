package ports

import (
	"context"

	"github.com/mercatura/catalog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. Returns domain.ErrEmailInUse when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository defines persistence operations for the role registry.
type RoleRepository interface {
	// FindByName returns domain.ErrRoleNotFound when the role is absent.
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	// Ensure inserts the role if missing and returns the stored record.
	Ensure(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
