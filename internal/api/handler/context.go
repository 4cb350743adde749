package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mercatura/catalog-api/internal/api/middleware"
	"github.com/mercatura/catalog-api/internal/core/domain"
)

// ctxUser returns the identity bound by the Auth middleware, or nil when the
// request is unauthenticated. Handlers behind RequireAuthenticated can rely
// on a non-nil result.
func ctxUser(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	return user
}
