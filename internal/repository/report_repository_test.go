package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyWithNoActiveRooms(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM rooms WHERE is_active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := NewReportRepo(db)
	snap, err := repo.Occupancy(context.Background(), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, snap.TotalRooms)
	assert.Equal(t, 0, snap.OccupiedRooms)
	assert.Zero(t, snap.Rate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupancyRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	today := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM rooms WHERE is_active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery("SELECT COUNT\\(DISTINCT room_id\\) FROM reservations").
		WithArgs(today, today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := NewReportRepo(db)
	snap, err := repo.Occupancy(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 8, snap.TotalRooms)
	assert.Equal(t, 2, snap.OccupiedRooms)
	assert.InDelta(t, 25.0, snap.Rate, 0.0001)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayArrivalsWindowAndStitching(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	today := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM reservations WHERE check_in >= \\? AND check_in < \\?").
		WithArgs(today, tomorrow).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "check_in", "check_out", "status", "total_cents", "created_at", "updated_at",
		}).AddRow(77, 9, 5, today, today.AddDate(0, 0, 3), "CONFIRMED", 30000, now, now))
	mock.ExpectQuery("SELECT id, name, email FROM users WHERE id IN").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(9, "Client Test", "client@test.com"))
	mock.ExpectQuery("SELECT id, number, type FROM rooms WHERE id IN").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "type"}).
			AddRow(5, "101", "Simple"))

	repo := NewReportRepo(db)
	arrivals, err := repo.TodayArrivals(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, "Client Test", arrivals[0].GuestName)
	assert.Equal(t, "101", arrivals[0].RoomNumber)
	assert.Equal(t, "Simple", arrivals[0].RoomType)

	assert.NoError(t, mock.ExpectationsWereMet())
}
