package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/users"
)

// RegisterRoutes registers all auth routes. These are public; the /auth/me
// handler does its own cookie check.
func RegisterRoutes(e *echo.Echo, userService *users.Service, jwtSecret string) *Service {
	authService := NewService(userService, jwtSecret)

	h := &handler{
		authService: authService,
	}

	auth := e.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/logout", h.logout)
	auth.GET("/me", h.me)

	return authService
}
