// Package seed bootstraps the role registry and, when configured, a
// SUPER_ADMIN account. Signup depends on the USER role existing; a missing
// role surfaces later as a server misconfiguration, so seeding runs before
// the HTTP server accepts traffic.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/ports"
)

var roleDescriptions = map[domain.RoleName]string{
	domain.RoleUser:       "Default role for registered users",
	domain.RoleAdmin:      "Administrator role",
	domain.RoleSuperAdmin: "Super administrator role",
}

// Seeder ensures the fixed role set and the bootstrap admin exist.
type Seeder struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, log: log}
}

// Run seeds the three roles and, when adminEmail and adminPassword are both
// set, a SUPER_ADMIN user with those credentials. An already-registered
// admin email is left untouched.
func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string) error {
	for _, name := range []domain.RoleName{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin} {
		if _, err := s.roles.Ensure(ctx, &domain.Role{
			Name:        name,
			Description: roleDescriptions[name],
		}); err != nil {
			return err
		}
	}
	s.log.Info().Msg("role registry seeded")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}
	return s.ensureSuperAdmin(ctx, adminEmail, adminPassword)
}

func (s *Seeder) ensureSuperAdmin(ctx context.Context, email, password string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	role, err := s.roles.FindByName(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := s.users.Create(ctx, &domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         *role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		// Another replica may have created it between the check and the
		// insert; that is fine.
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil
		}
		return err
	}

	s.log.Info().Str("email", email).Msg("bootstrap super admin created")
	return nil
}
