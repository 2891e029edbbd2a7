package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/libooktrac/libooktrac/pkg/config"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readyConn struct {
	store database.Store
}

func (c *readyConn) Ping(_ context.Context) error { return nil }

func (c *readyConn) CollectionExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (c *readyConn) CreateCollection(_ context.Context, _ string) error { return nil }

func (c *readyConn) Store() database.Store { return c.store }

func (c *readyConn) Close(_ context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		BooksCollection: "books",
		UsersCollection: "users",
		JWTSecret:       "test-secret",
		ServerPort:      0,
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := database.NewMemoryStore()
	boot := database.NewBootstrapper(func(_ context.Context) (database.Conn, error) {
		return &readyConn{store: store}, nil
	}, []string{"books", "users"}, 1, time.Second)

	srv, err := New(ctx, testConfig(), store, boot)
	require.NoError(t, err)

	// The datastore hasn't bootstrapped yet.
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	_, err = boot.Run(ctx)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ready")
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := database.NewMemoryStore()
	boot := database.NewBootstrapper(func(_ context.Context) (database.Conn, error) {
		return &readyConn{store: store}, nil
	}, nil, 1, time.Second)

	srv, err := New(ctx, testConfig(), store, boot)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not_found")
}
