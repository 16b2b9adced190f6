package reviews

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/csvstore"
)

// RegisterRoutesWithGroup registers review routes on a pre-configured group.
// The server applies authentication before any of these run.
func RegisterRoutesWithGroup(g *echo.Group, store *csvstore.Store, dataDir string) *Service {
	reviewService := NewService(store, dataDir)

	h := &handler{reviewService: reviewService}

	g.POST("", h.create)
	g.GET("/book/:isbn", h.listByISBN)
	g.POST("/:id", h.edit)
	g.DELETE("/:id", h.delete)

	return reviewService
}
