package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// GuestReservationHandler covers the client-facing booking flow:
// create a request, list own reservations, inspect one, cancel one.
type GuestReservationHandler struct {
	Reservations *repository.ReservationRepo
}

func NewGuestReservationHandler(res *repository.ReservationRepo) *GuestReservationHandler {
	return &GuestReservationHandler{Reservations: res}
}

type bookReq struct {
	RoomID   uint64 `json:"room_id"`
	CheckIn  string `json:"check_in"`  // YYYY-MM-DD
	CheckOut string `json:"check_out"` // YYYY-MM-DD
}

// Book creates a PENDING reservation for the authenticated guest.
// The availability re-check and the insert run atomically in the
// repository, so two guests racing for the same room and dates get
// exactly one 201; the loser sees a 409.
func (h *GuestReservationHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.Create(ctx, currentUserID(c), req.RoomID, checkIn, checkOut)
	if err != nil {
		return reservationError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// MyReservations lists the guest's own reservations, newest first.
func (h *GuestReservationHandler) MyReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Get returns one reservation. Guests only ever see their own; a
// foreign id answers 404 rather than 403 so ids cannot be probed.
func (h *GuestReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return reservationError(c, err)
	}
	if res.UserID != currentUserID(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrReservationNotFound.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel cancels the guest's own reservation. Cancelling twice is
// reported as a conflict; the stored dates and total stay untouched.
func (h *GuestReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Reservations.CancelForUser(ctx, id, currentUserID(c)); err != nil {
		// Hide foreign reservations the same way Get does.
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrReservationNotFound.Error()})
		}
		return reservationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
