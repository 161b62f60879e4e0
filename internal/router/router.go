package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login and refresh live under /v1/auth and need no session; /v1/me
// and /v1/auth/logout sit behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse surface: the
// availability search guests use before creating an account. The
// cache middleware, when enabled, only wraps this group.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/rooms/available", p.AvailableRooms, mw...)
}
