package ratings

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/csvstore"
)

// RegisterRoutesWithGroup registers rating routes on a pre-configured group.
// The server applies authentication before any of these run.
func RegisterRoutesWithGroup(g *echo.Group, store *csvstore.Store, dataDir string) *Service {
	ratingService := NewService(store, dataDir)

	h := &handler{ratingService: ratingService}

	g.POST("", h.upsert)
	g.GET("/:isbn", h.get)
	g.GET("/:isbn/average", h.average)
	g.DELETE("/:isbn", h.delete)

	return ratingService
}
