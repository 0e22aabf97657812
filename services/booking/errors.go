package booking

import (
	"errors"
	"fmt"

	"github.com/KasenaM/kisite-canines/models"
)

// ErrServiceNotFound is returned when a dog/service index does not resolve
// inside the targeted booking.
var ErrServiceNotFound = errors.New("service not found")

// ValidationError reports a rejected request payload. No write has occurred.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a date-range overlap with an existing booking for the
// same dog and service. The whole booking request is rejected.
type ConflictError struct {
	Service models.ServiceType
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict detected.", e.Service)
}
