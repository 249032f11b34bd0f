package scheduling

import "errors"

// Every failure in this package is one of these sentinels (possibly wrapped).
// Nothing is retried or recovered internally; callers map them at the HTTP
// boundary.
var (
	ErrUnknownDoctor  = errors.New("doctor not found in catalog")
	ErrUnknownPatient = errors.New("patient not found")
	ErrNotFound       = errors.New("appointment not found")
)

var (
	ErrInvalidSlot       = errors.New("time slot not offered by doctor")
	ErrSlotTaken         = errors.New("slot already booked for this doctor, date and time")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
)

var (
	ErrBadDate       = errors.New("invalid appointment date")
	ErrPastDate      = errors.New("appointment date cannot be in the past")
	ErrReasonTooLong = errors.New("booking reason exceeds maximum length")
)
