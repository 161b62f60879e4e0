// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when reception approves a
// reservation. It carries enough context for downstream consumers
// (housekeeping schedules, notification mails, analytics) to act
// without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	RoomID        uint64 `json:"room_id"`
	RoomNumber    string `json:"room_number"`
	RoomType      string `json:"room_type"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
	TotalCents    uint32 `json:"total_cents"`
	ConfirmedAt   string `json:"confirmed_at"`
}
