package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReportRepo answers the reception dashboard queries: today's
// arrivals and departures and the current occupancy rate. It is
// read-only over the rooms and reservations tables.
type ReportRepo struct{ DB *sql.DB }

// NewReportRepo returns a new ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// OccupancySnapshot is the dashboard summary. Rate is a percentage
// in [0,100]; it is defined as 0 when there are no active rooms.
type OccupancySnapshot struct {
	TotalRooms    int     `json:"total_rooms"`
	OccupiedRooms int     `json:"occupied_rooms"`
	Rate          float64 `json:"occupancy_rate"`
}

// TodayArrivals returns the non-cancelled reservations whose
// check-in date falls within [today, today+1d), ordered by check-in
// ascending, stitched with guest and room records.
func (r *ReportRepo) TodayArrivals(ctx context.Context, today time.Time) ([]ReservationDetail, error) {
	return r.window(ctx, "check_in", today)
}

// TodayDepartures is the same window over the check-out date,
// ordered by check-out ascending.
func (r *ReportRepo) TodayDepartures(ctx context.Context, today time.Time) ([]ReservationDetail, error) {
	return r.window(ctx, "check_out", today)
}

// window runs the day-window scan over the named date column.
// column is one of the two fixed literals above, never user input.
func (r *ReportRepo) window(ctx context.Context, column string, today time.Time) ([]ReservationDetail, error) {
	tomorrow := today.AddDate(0, 0, 1)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE "+column+" >= ? AND "+column+" < ? AND status <> 'CANCELLED' ORDER BY "+column,
		today, tomorrow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := scanReservation(rows, &d.Reservation); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return (&ReservationRepo{DB: r.DB}).stitchDetails(ctx, details)
}

// Occupancy computes the share of active rooms that have a
// non-cancelled reservation covering today (check_in <= today <
// check_out). Zero active rooms yields a zero rate rather than a
// division error.
func (r *ReportRepo) Occupancy(ctx context.Context, today time.Time) (OccupancySnapshot, error) {
	var snap OccupancySnapshot
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rooms WHERE is_active = 1").Scan(&snap.TotalRooms)
	if err != nil {
		return snap, err
	}
	if snap.TotalRooms == 0 {
		return snap, nil
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT room_id) FROM reservations WHERE check_in <= ? AND check_out > ? AND status <> 'CANCELLED'",
		today, today).Scan(&snap.OccupiedRooms)
	if err != nil {
		return snap, err
	}
	snap.Rate = float64(snap.OccupiedRooms) / float64(snap.TotalRooms) * 100
	return snap, nil
}
