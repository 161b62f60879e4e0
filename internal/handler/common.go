package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	"github.com/iliyamo/hotel-room-reservation/internal/utils"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// currentUserID returns the authenticated user's ID placed in the
// context by the JWTAuth middleware, or 0 when absent.
func currentUserID(c echo.Context) uint64 {
	uid, _ := c.Get("user_id").(uint64)
	return uid
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseDateRange reads and validates a check_in/check_out pair in
// YYYY-MM-DD form. checkOut must be strictly after checkIn.
func parseDateRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("check_in must be YYYY-MM-DD")
	}
	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("check_out must be YYYY-MM-DD")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, repository.ErrInvalidDateRange
	}
	return checkIn, checkOut, nil
}

// reservationError maps the repository sentinels onto HTTP responses.
// Unknown errors become a 500 with a generic message.
func reservationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidDateRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomInactive),
		errors.Is(err, repository.ErrRoomUnavailable),
		errors.Is(err, repository.ErrNotPending),
		errors.Is(err, repository.ErrAlreadyCancelled),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
