package books

import (
	"github.com/labstack/echo/v4"
	"github.com/libooktrac/libooktrac/pkg/auth"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/reservation"
)

// RegisterRoutes registers book routes. Reads are open; mutations require an
// authenticated session.
func RegisterRoutes(e *echo.Echo, store database.Store, collection string, isbns *reservation.Set, authMiddleware *auth.Middleware) *Service {
	bookService := NewService(store, collection, isbns)

	h := &handler{
		bookService: bookService,
	}

	g := e.Group("/books")
	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, authMiddleware.Authenticate)
	g.POST("/:id", h.update, authMiddleware.Authenticate)
	g.DELETE("/:id", h.delete, authMiddleware.Authenticate)

	return bookService
}
