package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RegisterClient registers guest-scoped endpoints under /v1. All
// routes require a valid JWT with the CLIENT role. Guests can book a
// room, list their own reservations, inspect one and cancel one.
func RegisterClient(e *echo.Echo, h *handler.GuestReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient),
	)
	g.POST("/reservations", h.Book)
	g.GET("/my-reservations", h.MyReservations)
	g.GET("/reservations/:id", h.Get)
	g.DELETE("/reservations/:id", h.Cancel)
}
