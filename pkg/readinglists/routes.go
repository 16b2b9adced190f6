package readinglists

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/books"
	"github.com/openshelf/openshelf/pkg/csvstore"
)

// RegisterRoutesWithGroup registers reading-list routes on a pre-configured
// group. The server applies authentication before any of these run.
func RegisterRoutesWithGroup(g *echo.Group, store *csvstore.Store, dataDir string, bookService *books.Service) *Service {
	listService := NewService(store, dataDir, bookService)

	h := &handler{listService: listService}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.POST("/:id", h.rename)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/visibility", h.toggleVisibility)
	g.POST("/:id/books", h.addBook)
	g.DELETE("/:id/books/:isbn", h.removeBook)
	g.GET("/public/:userId", h.publicForUser)

	return listService
}
