// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios with
// errors.Is and map each one to a distinct HTTP response. Anything
// not covered by a sentinel is a store failure and is propagated to
// the caller unwrapped.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a room that still has upcoming reservations. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidDateRange is returned when a check-out date is not
// strictly after the check-in date.
var ErrInvalidDateRange = errors.New("check_out must be after check_in")

// ErrRoomNotFound is returned when a room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomInactive is returned when a booking targets a room whose
// is_active flag is false.
var ErrRoomInactive = errors.New("room is not active")

// ErrRoomUnavailable is returned when the requested date range
// overlaps an existing non-cancelled reservation for the room.
var ErrRoomUnavailable = errors.New("room unavailable for the requested dates")

// ErrReservationNotFound is returned when a reservation id does
// not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrNotPending is returned when approval is attempted on a
// reservation that is not in the PENDING state.
var ErrNotPending = errors.New("reservation not in pending state")

// ErrAlreadyCancelled is returned on the guest cancellation path
// when the reservation is already CANCELLED. The operation is a
// no-op; dates and total are untouched.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// ErrRoomNumberExists is returned when creating or renumbering a
// room would violate the unique room number constraint.
var ErrRoomNumberExists = errors.New("room number already exists")
