package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/service"
)

const testSecret = "fedcba9876543210fedcba9876543210"

type userRepoStub struct {
	users map[string]*domain.User
}

func newUserRepoStub(users ...*domain.User) *userRepoStub {
	r := &userRepoStub{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *userRepoStub) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *userRepoStub) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.Email] = u
	return u, nil
}

func runAuth(t *testing.T, authHeader string, users *userRepoStub, tokens *service.TokenService) (echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := Auth(tokens, users)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return c, reached
}

func TestAuth_ValidTokenBindsIdentity(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	user := &domain.User{
		ID:    "u1",
		Email: "admin@example.com",
		Role:  domain.Role{Name: domain.RoleSuperAdmin},
	}
	users := newUserRepoStub(user)

	token, err := tokens.Issue(user.Email, map[string]any{"role": string(user.Role.Name)})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	c, reached := runAuth(t, "Bearer "+token, users, tokens)
	if !reached {
		t.Fatalf("handler not reached")
	}
	if got, _ := c.Get(CtxEmail).(string); got != user.Email {
		t.Fatalf("email not bound, got %q", got)
	}
	if got, _ := c.Get(CtxRole).(string); got != string(domain.RoleSuperAdmin) {
		t.Fatalf("role not bound, got %q", got)
	}
	bound, ok := c.Get(CtxUser).(*domain.User)
	if !ok || bound.ID != user.ID {
		t.Fatalf("user not bound: %v", c.Get(CtxUser))
	}
}

func TestAuth_AnonymousRequestsProceedUnbound(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	users := newUserRepoStub()

	headers := map[string]string{
		"no header":        "",
		"wrong scheme":     "Basic abc123",
		"missing token":    "Bearer",
		"malformed token":  "Bearer not-a-jwt",
		"unknown subject":  "",
		"tampered secret":  "",
		"expired lifetime": "",
	}

	other := service.NewTokenService("00000000000000000000000000000000", time.Hour)
	tampered, _ := other.Issue("admin@example.com", nil)
	headers["tampered secret"] = "Bearer " + tampered

	unknown, _ := tokens.Issue("ghost@example.com", nil)
	headers["unknown subject"] = "Bearer " + unknown

	expiredClaims := jwt.MapClaims{
		"sub": "admin@example.com",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	headers["expired lifetime"] = "Bearer " + expired

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			c, reached := runAuth(t, header, users, tokens)
			if !reached {
				t.Fatalf("request must proceed unauthenticated")
			}
			if role, _ := c.Get(CtxRole).(string); role != "" {
				t.Fatalf("no role may be bound, got %q", role)
			}
			if c.Get(CtxUser) != nil {
				t.Fatalf("no user may be bound")
			}
		})
	}
}
