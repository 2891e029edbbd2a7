package users

import (
	"github.com/labstack/echo/v4"
	"github.com/libooktrac/libooktrac/pkg/auth"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/reservation"
)

// RegisterRoutes registers member routes. Registration is open so a fresh
// deployment can create its first account; every other mutation requires an
// authenticated session.
func RegisterRoutes(e *echo.Echo, store database.Store, collection string, usernames *reservation.Set, authMiddleware *auth.Middleware) *Service {
	userService := NewService(store, collection, usernames)

	h := &handler{
		userService: userService,
	}

	g := e.Group("/users")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("/:id", h.update, authMiddleware.Authenticate)
	g.DELETE("/:id", h.delete, authMiddleware.Authenticate)
	g.POST("/:id/reset-password", h.resetPassword, authMiddleware.Authenticate)
	g.POST("/:id/verify-password", h.verifyPassword, authMiddleware.Authenticate)

	return userService
}
