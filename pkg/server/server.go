package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/libooktrac/libooktrac/pkg/auth"
	"github.com/libooktrac/libooktrac/pkg/binder"
	"github.com/libooktrac/libooktrac/pkg/books"
	"github.com/libooktrac/libooktrac/pkg/config"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/errcodes"
	"github.com/libooktrac/libooktrac/pkg/reservation"
	"github.com/libooktrac/libooktrac/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
)

// New builds the HTTP server. It registers every route, and warms the ISBN
// and username reservation sets from the datastore so uniqueness holds from
// the first request.
func New(ctx context.Context, cfg *config.Config, store database.Store, boot *database.Bootstrapper) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)
	e.GET("/health/ready", readinessHandler(boot))

	// Auth routes and the middleware guarding mutations.
	authService := auth.RegisterRoutes(e, store, cfg.UsersCollection, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	isbns := reservation.NewSet()
	usernames := reservation.NewSet()

	bookService := books.RegisterRoutes(e, store, cfg.BooksCollection, isbns, authMiddleware)
	userService := users.RegisterRoutes(e, store, cfg.UsersCollection, usernames, authMiddleware)

	if err := bookService.WarmReservations(ctx); err != nil {
		return nil, err
	}
	if err := userService.WarmReservations(ctx); err != nil {
		return nil, err
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// readinessHandler reports whether the datastore finished bootstrapping.
// Probes get a 503 until the bootstrapper reaches Ready.
func readinessHandler(boot *database.Bootstrapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := boot.State()
		if state != database.StateReady {
			return errcodes.ServiceUnavailable("Datastore is " + state.String() + ".")
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
