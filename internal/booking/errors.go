// Package booking implements the reservation transaction core: request
// validation, conflict detection under row locks, reserve code allocation
// and the atomic persist/cancel flows.
package booking

import "errors"

// Rejection outcomes of the booking and cancellation transactions.
// Handlers translate these into user-facing chat responses; anything not
// in this list is an infrastructure failure and surfaces generically.
var (
	ErrUnknownResource   = errors.New("unknown resource identifier")
	ErrOutsideWindow     = errors.New("outside the booking window")
	ErrBadDuration       = errors.New("invalid slot duration")
	ErrSlotConflict      = errors.New("overlapping booking exists")
	ErrAllInstancesBusy  = errors.New("all instances busy")
	ErrDuplicateCategory = errors.New("category already booked today")
	ErrNotPayer          = errors.New("requester is not a registered payer")
	ErrNotVerified       = errors.New("requester has no verified student record")
	ErrCodeNotFound      = errors.New("no reservation with that code")
	ErrNotOwner          = errors.New("requester does not own the reservation")
	ErrAlreadyCancelled  = errors.New("reservation already cancelled")
	ErrInvalidCode       = errors.New("invalid reserve code")
)

// ErrNotFound is the store-level sentinel for a missing row.  Store
// implementations return it instead of driver-specific errors so the
// service can map lookups to the outcomes above.
var ErrNotFound = errors.New("record not found")
