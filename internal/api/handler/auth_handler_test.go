package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercatura/catalog-api/internal/api/middleware"
	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, in ports.SignUpInput) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Created(t *testing.T) {
	svc := &stubAuthService{
		signUpFn: func(_ context.Context, in ports.SignUpInput) (*domain.User, error) {
			return &domain.User{
				ID:    "u1",
				Name:  in.Name,
				Email: in.Email,
				Role:  domain.Role{Name: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/signup",
		`{"name":"Ana","lastname":"Lopez","email":"ana@example.com","password":"secret1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("response is not a user: %v", err)
	}
	if user.Email != "ana@example.com" || user.Role.Name != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_Rejections(t *testing.T) {
	svc := &stubAuthService{
		signUpFn: func(_ context.Context, _ ports.SignUpInput) (*domain.User, error) {
			return nil, domain.ErrEmailInUse
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/signup",
		`{"email":"ana@example.com","password":"secret1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", rec.Code)
	}

	for _, body := range []string{
		`{"email":"not-an-email","password":"secret1"}`,
		`{"email":"ana@example.com","password":"short"}`,
		`{"password":"secret1"}`,
	} {
		c, rec := newJSONContext(http.MethodPost, "/auth/signup", body)
		if err := h.Signup(c); err != nil {
			t.Fatalf("Signup returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.Role{Name: domain.RoleSuperAdmin}}
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "ana@example.com" || password != "secret1" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.LoginResult{
				Token:           "signed.jwt.token",
				ExpiresInMillis: time.Hour.Milliseconds(),
				User:            user,
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token     string       `json:"token"`
		ExpiresIn int64        `json:"expiresIn"`
		AuthUser  *domain.User `json:"authUser"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
	if resp.ExpiresIn != time.Hour.Milliseconds() {
		t.Fatalf("unexpected expiresIn: %d", resp.ExpiresIn)
	}
	if resp.AuthUser == nil || resp.AuthUser.Email != user.Email {
		t.Fatalf("unexpected authUser: %+v", resp.AuthUser)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUser, &domain.User{ID: "u1", Email: "ana@example.com"})

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthHandler_Login_Unauthorized(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"wrong-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
