package bookingRepo

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the query.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrDuplicateReferenceCode is returned when an insert collides with the
	// unique reference-code index.
	ErrDuplicateReferenceCode = errors.New("duplicate booking reference code")
)
