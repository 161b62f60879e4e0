package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated surface: the availability
// search guests use before signing up.
type PublicHandler struct {
	Rooms *repository.RoomRepo
}

func NewPublicHandler(rooms *repository.RoomRepo) *PublicHandler {
	return &PublicHandler{Rooms: rooms}
}

// AvailableRooms lists active rooms free for the whole half-open
// range [check_in, check_out). Both query params are required in
// YYYY-MM-DD form. Sits behind the response cache; availability
// answers are allowed to be a few seconds stale.
func (h *PublicHandler) AvailableRooms(c echo.Context) error {
	checkIn, checkOut, err := parseDateRange(c.QueryParam("check_in"), c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.ListAvailable(ctx, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"check_in":  checkIn.Format("2006-01-02"),
		"check_out": checkOut.Format("2006-01-02"),
		"rooms":     rooms,
	})
}
