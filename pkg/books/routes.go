package books

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/csvstore"
)

// RegisterRoutesWithGroup registers catalog routes on a pre-configured group.
// The server applies authentication before any of these run.
func RegisterRoutesWithGroup(g *echo.Group, store *csvstore.Store, dataDir string, dialect csvstore.Dialect) *Service {
	bookService := NewService(store, dataDir, dialect)

	h := &handler{bookService: bookService}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:isbn", h.retrieve)
	g.POST("/:isbn", h.update)
	g.DELETE("/:isbn", h.delete)

	return bookService
}
