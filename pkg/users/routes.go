package users

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/csvstore"
)

// RegisterRoutesWithGroup registers user-administration routes on a
// pre-configured group. The server applies authentication and the admin check
// before any of these run.
func RegisterRoutesWithGroup(g *echo.Group, store *csvstore.Store, dataDir string) *Service {
	userService := NewService(store, dataDir)

	h := &handler{userService: userService}

	g.GET("", h.list)
	g.POST("/:id", h.update)
	g.POST("/:id/suspend", h.suspend)
	g.POST("/:id/unsuspend", h.unsuspend)

	return userService
}
