package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

// UserContextKey is the echo.Context key the Auth middleware stores the
// authenticated *domain.User under.
const UserContextKey = "user"

// CurrentUser returns the user injected by the Auth middleware, if any.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserContextKey).(*domain.User)
	return u, ok && u != nil
}
