package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

func availabilityRequest(t *testing.T, h *PublicHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/v1/rooms/available", h.AvailableRooms)
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms/available"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAvailableRoomsRequiresBothDates(t *testing.T) {
	h := NewPublicHandler(repository.NewRoomRepo(nil))

	rec := availabilityRequest(t, h, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = availabilityRequest(t, h, "?check_in=2025-07-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = availabilityRequest(t, h, "?check_in=2025-07-10&check_out=not-a-date")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailableRoomsRejectsInvertedRange(t *testing.T) {
	h := NewPublicHandler(repository.NewRoomRepo(nil))

	rec := availabilityRequest(t, h, "?check_in=2025-07-13&check_out=2025-07-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// zero-night stay is equally invalid
	rec = availabilityRequest(t, h, "?check_in=2025-07-10&check_out=2025-07-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailableRoomsHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	checkIn := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 7, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("NOT EXISTS").
		WithArgs(checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "number", "type", "capacity", "price_per_night_cents", "is_active", "created_at", "updated_at",
		}).AddRow(1, "101", "Simple", 1, 8000, true, now, now))

	h := NewPublicHandler(repository.NewRoomRepo(db))
	rec := availabilityRequest(t, h, "?check_in=2025-07-10&check_out=2025-07-13")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"101"`)
	assert.Contains(t, rec.Body.String(), `"check_in":"2025-07-10"`)

	assert.NoError(t, mock.ExpectationsWereMet())
}
