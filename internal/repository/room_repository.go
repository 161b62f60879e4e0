package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomRepo provides CRUD operations for the room catalog. Rooms
// are pure data; all booking rules live in ReservationRepo. Dates
// passed to availability queries are at date precision and ranges
// are half-open [checkIn, checkOut).
type RoomRepo struct{ DB *sql.DB }

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomColumns = "id, number, type, capacity, price_per_night_cents, is_active, created_at, updated_at"

func scanRoom(row interface{ Scan(...any) error }, r *model.Room) error {
	return row.Scan(&r.ID, &r.Number, &r.Type, &r.Capacity, &r.PricePerNightCents, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
}

// Create inserts a room and returns its ID. A duplicate room
// number maps to ErrRoomNumberExists (MySQL error 1062).
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) (uint64, error) {
	room.Number = strings.TrimSpace(room.Number)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (number, type, capacity, price_per_night_cents, is_active) VALUES (?,?,?,?,?)",
		room.Number, room.Type, room.Capacity, room.PricePerNightCents, room.IsActive)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrRoomNumberExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	room.ID = uint64(id)
	return uint64(id), nil
}

// GetByID fetches a room by id. Returns ErrRoomNotFound when no
// row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var room model.Room
	err := scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id=? LIMIT 1", id), &room)
	if err == sql.ErrNoRows {
		return room, ErrRoomNotFound
	}
	return room, err
}

// Update overwrites a room's attributes. The update is full-record
// (last writer wins); there is no optimistic concurrency token.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	room.Number = strings.TrimSpace(room.Number)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE rooms SET number=?, type=?, capacity=?, price_per_night_cents=?, is_active=? WHERE id=?",
		room.Number, room.Type, room.Capacity, room.PricePerNightCents, room.IsActive, room.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomNumberExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the room is gone or the values were identical.
		// Distinguish by existence so callers get a real not-found.
		if _, gerr := r.GetByID(ctx, room.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// ListAll returns every room ordered by room number.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM rooms ORDER BY number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := scanRoom(rows, &room); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// ListAvailable returns the active rooms that have no overlapping
// non-cancelled reservation inside [checkIn, checkOut). The overlap
// predicate is pushed down to the store as a NOT EXISTS so a single
// query answers the bulk availability question. Ordering follows
// the catalog listing (by room number). An inverted range yields an
// empty result by the caller's validation, not an error.
func (r *RoomRepo) ListAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms r
	           WHERE r.is_active = 1
	             AND NOT EXISTS (
	               SELECT 1 FROM reservations x
	               WHERE x.room_id = r.id
	                 AND x.status <> 'CANCELLED'
	                 AND x.check_in < ? AND x.check_out > ?
	             )
	           ORDER BY r.number`
	rows, err := r.DB.QueryContext(ctx, q, checkOut, checkIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := scanRoom(rows, &room); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// CountActive returns the number of active rooms.
func (r *RoomRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rooms WHERE is_active = 1").Scan(&n)
	return n, err
}

// Delete removes a room. Deletion is rejected with ErrConflict when
// the room still has a non-cancelled reservation departing after
// today; cancelled or fully departed rooms may be removed freely.
func (r *RoomRepo) Delete(ctx context.Context, id uint64, today time.Time) error {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE room_id=? AND status <> 'CANCELLED' AND check_out > ?",
		id, today).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
