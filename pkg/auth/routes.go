package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/libooktrac/libooktrac/pkg/database"
)

// RegisterRoutes registers all auth routes.
func RegisterRoutes(e *echo.Echo, store database.Store, usersCollection, jwtSecret string) *Service {
	authService := NewService(store, usersCollection, jwtSecret)

	h := &handler{
		authService: authService,
	}

	auth := e.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/logout", h.logout)
	auth.GET("/me", h.me)

	return authService
}
