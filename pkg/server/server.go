package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/openshelf/openshelf/pkg/auth"
	"github.com/openshelf/openshelf/pkg/binder"
	"github.com/openshelf/openshelf/pkg/books"
	"github.com/openshelf/openshelf/pkg/config"
	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/openshelf/openshelf/pkg/ratings"
	"github.com/openshelf/openshelf/pkg/readinglists"
	"github.com/openshelf/openshelf/pkg/requests"
	"github.com/openshelf/openshelf/pkg/reviews"
	"github.com/openshelf/openshelf/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
)

func New(cfg *config.Config, store *csvstore.Store) (*http.Server, error) {
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

	// The user service is shared with the auth layer, which needs its lookup
	// path for login and token verification.
	usersGroup := e.Group("/users")
	userService := users.RegisterRoutesWithGroup(usersGroup, store, cfg.DataDir)

	authService := auth.RegisterRoutes(e, userService, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	// User administration is admin-only.
	usersGroup.Use(authMiddleware.Authenticate)
	usersGroup.Use(authMiddleware.RequireAdmin)

	registerProtectedRoutes(e, store, cfg, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// registerProtectedRoutes registers the resource routes that require an
// authenticated user.
func registerProtectedRoutes(e *echo.Echo, store *csvstore.Store, cfg *config.Config, authMiddleware *auth.Middleware) {
	booksGroup := e.Group("/books")
	booksGroup.Use(authMiddleware.Authenticate)
	bookService := books.RegisterRoutesWithGroup(booksGroup, store, cfg.DataDir, cfg.BookDialect())

	requestsGroup := e.Group("/requests")
	requestsGroup.Use(authMiddleware.Authenticate)
	requests.RegisterRoutesWithGroup(requestsGroup, store, cfg.DataDir)

	reviewsGroup := e.Group("/reviews")
	reviewsGroup.Use(authMiddleware.Authenticate)
	reviews.RegisterRoutesWithGroup(reviewsGroup, store, cfg.DataDir)

	ratingsGroup := e.Group("/ratings")
	ratingsGroup.Use(authMiddleware.Authenticate)
	ratings.RegisterRoutesWithGroup(ratingsGroup, store, cfg.DataDir)

	listsGroup := e.Group("/lists")
	listsGroup.Use(authMiddleware.Authenticate)
	readinglists.RegisterRoutesWithGroup(listsGroup, store, cfg.DataDir, bookService)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
