package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

var (
	testCheckIn  = time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	testCheckOut = time.Date(2025, 7, 13, 0, 0, 0, 0, time.UTC) // 3 nights
	testNow      = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
)

func roomRows(price uint32, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "number", "type", "capacity", "price_per_night_cents", "is_active", "created_at", "updated_at",
	}).AddRow(5, "101", "Simple", 1, price, active, testNow, testNow)
}

func reservationRows(id, userID, roomID uint64, status string, total uint32) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "room_id", "check_in", "check_out", "status", "total_cents", "created_at", "updated_at",
	}).AddRow(id, userID, roomID, testCheckIn, testCheckOut, status, total, testNow, testNow)
}

// The expectation order here is load-bearing: the room row must be
// locked (FOR UPDATE) before the overlap count runs, which is what
// serializes concurrent bookings for the same room. sqlmock can only
// assert that ordering, not true contention; the racing-creates case
// lives in concurrency_integration_test.go behind the integration tag.
func TestCreatePricesStayAtCurrentRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(5)).
		WillReturnRows(roomRows(10000, true))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
		WithArgs(uint64(5), testCheckOut, testCheckIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(uint64(9), uint64(5), testCheckIn, testCheckOut, model.StatusPending, uint32(30000)).
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(int64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusPending, 30000))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	res, err := repo.Create(context.Background(), 9, 5, testCheckIn, testCheckOut)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), res.ID)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, uint32(30000), res.TotalCents) // 3 nights x 100.00

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsInvalidRangeWithoutTouchingStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReservationRepo(db)

	_, err = repo.Create(context.Background(), 9, 5, testCheckOut, testCheckIn)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = repo.Create(context.Background(), 9, 5, testCheckIn, testCheckIn)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsOverlapAndRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(5)).
		WillReturnRows(roomRows(10000, true))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
		WithArgs(uint64(5), testCheckOut, testCheckIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	_, err = repo.Create(context.Background(), 9, 5, testCheckIn, testCheckOut)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsInactiveRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(5)).
		WillReturnRows(roomRows(10000, false))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	_, err = repo.Create(context.Background(), 9, 5, testCheckIn, testCheckOut)
	assert.ErrorIs(t, err, ErrRoomInactive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomAvailableBackToBackStays(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The overlap predicate is strict, so a stay starting exactly on
	// another's check-out must produce args that exclude it.
	nextIn := testCheckOut
	nextOut := testCheckOut.AddDate(0, 0, 2)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
		WithArgs(uint64(5), nextOut, nextIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := NewReservationRepo(db)
	free, err := repo.RoomAvailable(context.Background(), 5, nextIn, nextOut, 0)
	require.NoError(t, err)
	assert.True(t, free)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomAvailableExcludesOwnReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("AND id <> \\?").
		WithArgs(uint64(5), testCheckOut, testCheckIn, uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := NewReservationRepo(db)
	free, err := repo.RoomAvailable(context.Background(), 5, testCheckIn, testCheckOut, 77)
	require.NoError(t, err)
	assert.True(t, free)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomAvailableInvertedRangeIsUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReservationRepo(db)
	free, err := repo.RoomAvailable(context.Background(), 5, testCheckOut, testCheckIn, 0)
	require.NoError(t, err)
	assert.False(t, free)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveOnlyFromPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Guarded UPDATE touches nothing because the row is CONFIRMED.
	mock.ExpectExec("UPDATE reservations SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs(model.StatusConfirmed, uint64(77), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusConfirmed, 30000))

	repo := NewReservationRepo(db)
	_, err = repo.Approve(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotPending)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMissingReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE reservations SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs(model.StatusConfirmed, uint64(404), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewReservationRepo(db)
	_, err = repo.Approve(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelForUserChecksOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusPending, 30000))

	repo := NewReservationRepo(db)
	err = repo.CancelForUser(context.Background(), 77, 12) // not the owner
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelForUserTwiceIsReported(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusCancelled, 30000))

	repo := NewReservationRepo(db)
	err = repo.CancelForUser(context.Background(), 77, 9)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditRejectsOverlappingDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newIn := testCheckIn.AddDate(0, 0, 5)
	newOut := testCheckOut.AddDate(0, 0, 5)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusPending, 30000))
	mock.ExpectQuery("FROM rooms WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(5)).
		WillReturnRows(roomRows(10000, true))
	mock.ExpectQuery("AND id <> \\?").
		WithArgs(uint64(5), newOut, newIn, uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	_, err = repo.Edit(context.Background(), 77, model.StatusPending, &newIn, &newOut)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditRepricesFromCurrentRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newIn := testCheckIn
	newOut := testCheckIn.AddDate(0, 0, 2) // 2 nights at the new rate

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusPending, 30000))
	mock.ExpectQuery("FROM rooms WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(5)).
		WillReturnRows(roomRows(15000, true)) // price raised since booking
	mock.ExpectQuery("AND id <> \\?").
		WithArgs(uint64(5), newOut, newIn, uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE reservations SET check_in=\\?, check_out=\\?, total_cents=\\?").
		WithArgs(newIn, newOut, uint32(30000), uint64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations SET status=\\? WHERE id=\\?").
		WithArgs(model.StatusConfirmed, uint64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusConfirmed, 30000))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	res, err := repo.Edit(context.Background(), 77, model.StatusConfirmed, &newIn, &newOut)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, uint32(30000), res.TotalCents) // 2 x 150.00

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditStatusOnlySkipsAvailabilityCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=\\? FOR UPDATE").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusPending, 30000))
	mock.ExpectExec("UPDATE reservations SET status=\\? WHERE id=\\?").
		WithArgs(model.StatusCompleted, uint64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM reservations WHERE id=\\?").
		WithArgs(uint64(77)).
		WillReturnRows(reservationRows(77, 9, 5, model.StatusCompleted, 30000))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	res, err := repo.Edit(context.Background(), 77, model.StatusCompleted, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, res.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
