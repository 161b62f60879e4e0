package model

import "time"

// Reservation statuses. PENDING and CONFIRMED count against room
// availability; CANCELLED never does. CANCELLED and COMPLETED are
// terminal: no transition is defined out of them.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Reservation records a guest's booking of a single room for a
// half-open date range [CheckIn, CheckOut). For any room, the
// reservations that are not CANCELLED must have pairwise
// non-overlapping ranges; two ranges overlap iff
// a.CheckIn < b.CheckOut && a.CheckOut > b.CheckIn, so a booking
// ending on the day another one starts is allowed.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – guest who made the reservation.
//  RoomID     – room being reserved.
//  CheckIn    – arrival date (inclusive, date precision).
//  CheckOut   – departure date (exclusive, strictly after CheckIn).
//  Status     – one of the Status* constants above.
//  TotalCents – nights × nightly price at creation time, in cents.
//               Frozen unless the dates are edited.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    `json:"id"`          // reservations.id
	UserID     uint64    `json:"user_id"`     // reservations.user_id
	RoomID     uint64    `json:"room_id"`     // reservations.room_id
	CheckIn    time.Time `json:"check_in"`    // reservations.check_in
	CheckOut   time.Time `json:"check_out"`   // reservations.check_out
	Status     string    `json:"status"`      // reservations.status
	TotalCents uint32    `json:"total_cents"` // reservations.total_cents
	CreatedAt  time.Time `json:"created_at"`  // reservations.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // reservations.updated_at
}

// IsTerminal reports whether no further status transition is
// defined for the given status.
func IsTerminal(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

// ValidStatus reports whether s is one of the known reservation
// statuses. Used when receptionists edit a reservation through the
// HTTP surface.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}
