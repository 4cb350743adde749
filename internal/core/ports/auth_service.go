package ports

import (
	"context"

	"github.com/mercatura/catalog-api/internal/core/domain"
)

// SignUpInput carries the data needed to register a new account.
type SignUpInput struct {
	Name     string
	Lastname string
	Email    string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	// ExpiresInMillis is the configured token TTL, echoed for client display.
	ExpiresInMillis int64
	User            *domain.User
}

// AuthService defines the signup/login use cases.
type AuthService interface {
	// SignUp registers a new user with the default USER role. Fails with
	// domain.ErrEmailInUse on duplicate email and domain.ErrRoleNotFound
	// when the default role has not been seeded.
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	// Login verifies credentials and issues a token. Any credential failure
	// is domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
