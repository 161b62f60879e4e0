package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/utils"
)

// ReservationRepo owns the reservation ledger and the availability
// rules over it. All date ranges are half-open [checkIn, checkOut)
// at date precision and all timestamps are stored in UTC.
//
// Concurrency contract: every path that checks availability and
// then writes (Create, EditDates) runs inside a single transaction
// that first acquires the room row with SELECT ... FOR UPDATE.
// Concurrent bookings for the same room serialize on that row lock,
// so of two overlapping requests at most one commits; the other
// re-reads after the winner's insert is visible and fails with
// ErrRoomUnavailable.
type ReservationRepo struct{ DB *sql.DB }

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = "id, user_id, room_id, check_in, check_out, status, total_cents, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
	return row.Scan(&res.ID, &res.UserID, &res.RoomID, &res.CheckIn, &res.CheckOut,
		&res.Status, &res.TotalCents, &res.CreatedAt, &res.UpdatedAt)
}

// queryer abstracts *sql.DB and *sql.Tx so the overlap predicate
// can run standalone or inside the booking transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// roomAvailable runs the overlap scan on q. Two intervals [a,b) and
// [c,d) overlap iff a<d && c<b, so back-to-back stays (b==c) do not
// collide. excludeID, when non-zero, skips one reservation row and
// is used when re-validating a date edit against everything else.
func roomAvailable(ctx context.Context, q queryer, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (bool, error) {
	if !checkOut.After(checkIn) {
		// Inverted or empty range is "unavailable" by convention,
		// callers validate before writing anything.
		return false, nil
	}
	query := `SELECT COUNT(*) FROM reservations
	          WHERE room_id = ? AND status <> 'CANCELLED'
	            AND check_in < ? AND check_out > ?`
	args := []any{roomID, checkOut, checkIn}
	if excludeID != 0 {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// RoomAvailable reports whether the room is free for the given
// range. Read-only; no lock is taken. Pass excludeID=0 unless
// re-validating an edit of an existing reservation.
func (r *ReservationRepo) RoomAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (bool, error) {
	return roomAvailable(ctx, r.DB, roomID, checkIn, checkOut, excludeID)
}

// lockRoomTx loads the room row under FOR UPDATE, giving the caller
// exclusive use of the room for the remainder of the transaction.
func lockRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) (model.Room, error) {
	var room model.Room
	err := tx.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id=? FOR UPDATE", roomID).
		Scan(&room.ID, &room.Number, &room.Type, &room.Capacity,
			&room.PricePerNightCents, &room.IsActive, &room.CreatedAt, &room.UpdatedAt)
	if err == sql.ErrNoRows {
		return room, ErrRoomNotFound
	}
	return room, err
}

// Create books a room for a user. It validates the date range,
// locks the room row, rejects inactive or missing rooms, re-checks
// availability inside the transaction and inserts a PENDING
// reservation priced at nights × the room's current nightly rate.
// No row is written when any step fails.
func (r *ReservationRepo) Create(ctx context.Context, userID, roomID uint64, checkIn, checkOut time.Time) (model.Reservation, error) {
	var res model.Reservation
	if !checkOut.After(checkIn) {
		return res, ErrInvalidDateRange
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := lockRoomTx(ctx, tx, roomID)
	if err != nil {
		return res, err
	}
	if !room.IsActive {
		return res, ErrRoomInactive
	}

	free, err := roomAvailable(ctx, tx, roomID, checkIn, checkOut, 0)
	if err != nil {
		return res, err
	}
	if !free {
		return res, ErrRoomUnavailable
	}

	total := uint32(utils.Nights(checkIn, checkOut)) * room.PricePerNightCents

	ins, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, room_id, check_in, check_out, status, total_cents) VALUES (?,?,?,?,?,?)",
		userID, roomID, checkIn, checkOut, model.StatusPending, total)
	if err != nil {
		return res, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return res, err
	}
	err = scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=?", id), &res)
	if err != nil {
		return res, err
	}

	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// GetByID fetches a reservation by id. Returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var res model.Reservation
	err := scanReservation(r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=? LIMIT 1", id), &res)
	if err == sql.ErrNoRows {
		return res, ErrReservationNotFound
	}
	return res, err
}

// Approve transitions PENDING → CONFIRMED. Any other current status
// yields ErrNotPending; the guarded UPDATE and the follow-up read
// make the two cases distinguishable without racing a concurrent
// status change.
func (r *ReservationRepo) Approve(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=? AND status=?",
		model.StatusConfirmed, id, model.StatusPending)
	if err != nil {
		return model.Reservation{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Reservation{}, err
	}
	if n == 0 {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return model.Reservation{}, gerr
		}
		return model.Reservation{}, ErrNotPending
	}
	return r.GetByID(ctx, id)
}

// Cancel is the staff cancellation path: any status moves to
// CANCELLED unconditionally. Cancelling an already cancelled
// reservation is a silent no-op for staff.
func (r *ReservationRepo) Cancel(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=? AND status <> ?",
		model.StatusCancelled, id, model.StatusCancelled)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

// CancelForUser is the guest cancellation path. It verifies the
// reservation belongs to userID before touching it, reports
// ErrAlreadyCancelled as a no-op when the status is already
// CANCELLED, and leaves dates and total untouched in every case.
func (r *ReservationRepo) CancelForUser(ctx context.Context, id, userID uint64) error {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.UserID != userID {
		return ErrForbidden
	}
	if res.Status == model.StatusCancelled {
		return ErrAlreadyCancelled
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", model.StatusCancelled, id)
	return err
}

// Edit applies a staff edit. When newCheckIn/newCheckOut are both
// non-nil the dates are validated, re-checked for availability with
// the reservation's own row excluded (under the room lock), written,
// and the total recomputed from the room's current nightly price.
// The requested status is applied afterwards in the same
// transaction; date change and status change are deliberately
// independent steps (see DESIGN.md on the combined-transition
// question).
func (r *ReservationRepo) Edit(ctx context.Context, id uint64, status string, newCheckIn, newCheckOut *time.Time) (model.Reservation, error) {
	var out model.Reservation

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return out, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var cur model.Reservation
	err = scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=? FOR UPDATE", id), &cur)
	if err == sql.ErrNoRows {
		return out, ErrReservationNotFound
	}
	if err != nil {
		return out, err
	}

	if newCheckIn != nil && newCheckOut != nil {
		if !newCheckOut.After(*newCheckIn) {
			return out, ErrInvalidDateRange
		}
		room, err := lockRoomTx(ctx, tx, cur.RoomID)
		if err != nil {
			return out, err
		}
		free, err := roomAvailable(ctx, tx, cur.RoomID, *newCheckIn, *newCheckOut, id)
		if err != nil {
			return out, err
		}
		if !free {
			return out, ErrRoomUnavailable
		}
		total := uint32(utils.Nights(*newCheckIn, *newCheckOut)) * room.PricePerNightCents
		if _, err := tx.ExecContext(ctx,
			"UPDATE reservations SET check_in=?, check_out=?, total_cents=? WHERE id=?",
			*newCheckIn, *newCheckOut, total, id); err != nil {
			return out, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", status, id); err != nil {
		return out, err
	}

	err = scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=?", id), &out)
	if err != nil {
		return out, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return out, nil
}

// ReservationDetail is a reservation joined in memory with its
// guest and room records. The store has no native join across the
// three collections, so listings fetch reservations first and then
// batch-fetch the related records by id.
type ReservationDetail struct {
	model.Reservation
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
}

// ListAll returns every reservation, newest first, stitched with
// guest and room info for the reception ledger view.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	return r.listDetails(ctx,
		"SELECT "+reservationColumns+" FROM reservations ORDER BY created_at DESC")
}

// ListByUser returns the given guest's reservations, newest first,
// stitched with room info.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	return r.listDetails(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id=? ORDER BY created_at DESC", userID)
}

func (r *ReservationRepo) listDetails(ctx context.Context, query string, args ...any) ([]ReservationDetail, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
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
	return r.stitchDetails(ctx, details)
}

// stitchDetails batch-fetches the users and rooms referenced by the
// reservations and fills in the display fields.
func (r *ReservationRepo) stitchDetails(ctx context.Context, details []ReservationDetail) ([]ReservationDetail, error) {
	if len(details) == 0 {
		return details, nil
	}
	userIDs := make(map[uint64]struct{})
	roomIDs := make(map[uint64]struct{})
	for _, d := range details {
		userIDs[d.UserID] = struct{}{}
		roomIDs[d.RoomID] = struct{}{}
	}
	users, err := fetchUserInfo(ctx, r.DB, userIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := fetchRoomInfo(ctx, r.DB, roomIDs)
	if err != nil {
		return nil, err
	}
	for i := range details {
		if u, ok := users[details[i].UserID]; ok {
			details[i].GuestName = u.name
			details[i].GuestEmail = u.email
		}
		if rm, ok := rooms[details[i].RoomID]; ok {
			details[i].RoomNumber = rm.number
			details[i].RoomType = rm.roomType
		}
	}
	return details, nil
}

type userInfo struct{ name, email string }
type roomInfo struct{ number, roomType string }

func idPlaceholders(ids map[uint64]struct{}) (string, []any) {
	args := make([]any, 0, len(ids))
	ph := ""
	for id := range ids {
		if ph != "" {
			ph += ","
		}
		ph += "?"
		args = append(args, id)
	}
	return ph, args
}

func fetchUserInfo(ctx context.Context, db *sql.DB, ids map[uint64]struct{}) (map[uint64]userInfo, error) {
	out := make(map[uint64]userInfo, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ph, args := idPlaceholders(ids)
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, email FROM users WHERE id IN ("+ph+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var u userInfo
		if err := rows.Scan(&id, &u.name, &u.email); err != nil {
			return nil, err
		}
		out[id] = u
	}
	return out, rows.Err()
}

func fetchRoomInfo(ctx context.Context, db *sql.DB, ids map[uint64]struct{}) (map[uint64]roomInfo, error) {
	out := make(map[uint64]roomInfo, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ph, args := idPlaceholders(ids)
	rows, err := db.QueryContext(ctx,
		"SELECT id, number, type FROM rooms WHERE id IN ("+ph+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var rm roomInfo
		if err := rows.Scan(&id, &rm.number, &rm.roomType); err != nil {
			return nil, err
		}
		out[id] = rm
	}
	return out, rows.Err()
}
