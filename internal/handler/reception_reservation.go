package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/queue"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-room-reservation/internal/service"
	"github.com/iliyamo/hotel-room-reservation/internal/utils"
)

// ReceptionReservationHandler is the staff side of the booking flow:
// the full ledger, approval, cancellation and edits.
type ReceptionReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
	Users        *repository.UserRepo
}

func NewReceptionReservationHandler(res *repository.ReservationRepo, rooms *repository.RoomRepo, users *repository.UserRepo) *ReceptionReservationHandler {
	return &ReceptionReservationHandler{Reservations: res, Rooms: rooms, Users: users}
}

// List returns every reservation, newest first, with guest and room
// info stitched in for the ledger view.
func (h *ReceptionReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Approve confirms a PENDING reservation and publishes a
// reservation.confirmed event for downstream consumers. The event is
// best-effort: a broker outage never rolls back the approval.
func (h *ReceptionReservationHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.Approve(ctx, id)
	if err != nil {
		return reservationError(c, err)
	}

	go h.publishConfirmed(res)

	return c.JSON(http.StatusOK, res)
}

// publishConfirmed enriches the reservation with guest and room info
// and hands it to the broker. Runs detached from the request.
func (h *ReceptionReservationHandler) publishConfirmed(res model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		RoomID:        res.RoomID,
		CheckIn:       res.CheckIn.Format(utils.DateLayout),
		CheckOut:      res.CheckOut.Format(utils.DateLayout),
		Nights:        utils.Nights(res.CheckIn, res.CheckOut),
		TotalCents:    res.TotalCents,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if u, err := h.Users.GetByID(ctx, res.UserID); err == nil {
		ev.GuestName = u.Name
		ev.GuestEmail = u.Email
	}
	if room, err := h.Rooms.GetByID(ctx, res.RoomID); err == nil {
		ev.RoomNumber = room.Number
		ev.RoomType = room.Type
	}
	_ = queue_publisher.PublishReservationConfirmed(ctx, ev)
}

// Cancel is the staff cancellation: any reservation in any state
// moves to CANCELLED, and cancelling twice is a harmless no-op.
func (h *ReceptionReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Reservations.Cancel(ctx, id); err != nil {
		return reservationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type editReq struct {
	Status   string `json:"status"`
	CheckIn  string `json:"check_in"`  // optional, YYYY-MM-DD
	CheckOut string `json:"check_out"` // optional, YYYY-MM-DD
}

// Edit applies a staff edit: a status and, optionally, a new date
// range. New dates are re-checked for availability (ignoring the
// reservation's own range) and the total is re-priced at the room's
// current nightly rate. Sending only one of the two dates is an
// error.
func (h *ReceptionReservationHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req editReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	var newIn, newOut *time.Time
	switch {
	case req.CheckIn == "" && req.CheckOut == "":
		// status-only edit
	case req.CheckIn != "" && req.CheckOut != "":
		checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		newIn, newOut = &checkIn, &checkOut
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be provided together"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.Edit(ctx, id, status, newIn, newOut)
	if err != nil {
		return reservationError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
