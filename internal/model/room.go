package model

import "time"

// Room represents a bookable hotel room as stored in the `rooms`
// table. The nightly price is kept in cents so money arithmetic
// stays integral. Rooms are never hard-deleted while they still
// have upcoming non-cancelled reservations; the repository layer
// enforces that rule.
//
// Fields:
//  ID                 – primary key identifier.
//  Number             – unique short room number ("101", "202a").
//  Type               – free-text category (Simple, Double, Suite).
//  Capacity           – maximum number of guests (1–10).
//  PricePerNightCents – nightly price in cents.
//  IsActive           – whether the room can currently be booked.
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Room struct {
	ID                 uint64    `json:"id"`                    // rooms.id
	Number             string    `json:"number"`                // rooms.number (unique)
	Type               string    `json:"type"`                  // rooms.type
	Capacity           int       `json:"capacity"`              // rooms.capacity
	PricePerNightCents uint32    `json:"price_per_night_cents"` // rooms.price_per_night_cents
	IsActive           bool      `json:"is_active"`             // rooms.is_active
	CreatedAt          time.Time `json:"created_at"`            // rooms.created_at
	UpdatedAt          time.Time `json:"updated_at"`            // rooms.updated_at
}
