package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RegisterReception registers staff endpoints under /v1/reception.
// All routes require a valid JWT with the RECEPTIONIST role: the room
// catalog CRUD, the full reservation ledger with approve / cancel /
// edit, and the front-desk dashboard.
func RegisterReception(
	e *echo.Echo,
	rooms *handler.RoomHandler,
	reservations *handler.ReceptionReservationHandler,
	dashboard *handler.DashboardHandler,
	jwtSecret string,
) {
	g := e.Group(
		"/v1/reception",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleReceptionist),
	)

	g.POST("/rooms", rooms.Create)
	g.GET("/rooms", rooms.List)
	g.GET("/rooms/:id", rooms.Get)
	g.PUT("/rooms/:id", rooms.Update)
	g.DELETE("/rooms/:id", rooms.Delete)

	g.GET("/reservations", reservations.List)
	g.POST("/reservations/:id/approve", reservations.Approve)
	g.POST("/reservations/:id/cancel", reservations.Cancel)
	g.PATCH("/reservations/:id", reservations.Edit)

	g.GET("/dashboard", dashboard.Dashboard)
}
