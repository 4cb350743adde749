package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mercatura/catalog-api/internal/api/metrics"
	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/ports"
)

// Context keys set by Auth on successful token validation.
const (
	CtxEmail = "email"
	CtxRole  = "role"
	CtxUser  = "user"
)

// Auth extracts a bearer token, validates it, resolves the subject against
// the user store, and binds identity + role to the request context.
//
// Any verification failure (missing header, malformed token, expired or
// tampered signature, unknown subject) leaves the request unauthenticated
// and lets it proceed: the per-endpoint policy middleware decides whether an
// anonymous request is acceptable. The filter never fails open to
// "authorized".
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			raw := parts[1]

			subject, err := tokens.ExtractSubject(raw)
			if err != nil {
				result := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					result = "expired"
				}
				metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
				return next(c)
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			if !tokens.IsValid(raw, user.Email) {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(CtxEmail, user.Email)
			c.Set(CtxRole, string(user.Role.Name))
			c.Set(CtxUser, user)

			return next(c)
		}
	}
}
