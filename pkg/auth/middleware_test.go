package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateMiddleware(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	m := NewMiddleware(svc)
	e := echo.New()

	next := func(c echo.Context) error {
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, id)
		return c.NoContent(http.StatusOK)
	}

	t.Run("valid cookie", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := m.Authenticate(next)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := m.Authenticate(next)(c)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Authentication required"))
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := m.Authenticate(next)(c)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid or expired token"))
	})
}

func TestRequireAdminMiddleware(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	m := NewMiddleware(svc)
	e := echo.New()

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", user)

	err = m.RequireAdmin(next)(c)
	assert.ErrorIs(t, err, errcodes.Forbidden("This action without admin rights"))

	user.IsAdmin = true
	c = e.NewContext(req, httptest.NewRecorder())
	c.Set("user", user)
	err = m.RequireAdmin(next)(c)
	assert.NoError(t, err)
}
