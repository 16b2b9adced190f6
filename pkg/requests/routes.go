package requests

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/csvstore"
)

// RegisterRoutesWithGroup registers acquisition-request routes on a
// pre-configured group. The server applies authentication before any of these
// run.
func RegisterRoutesWithGroup(g *echo.Group, store *csvstore.Store, dataDir string) *Service {
	requestService := NewService(store, dataDir)

	h := &handler{requestService: requestService}

	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)

	return requestService
}
