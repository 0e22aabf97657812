package bookingRepo

import "github.com/KasenaM/kisite-canines/models"

// BookingRepository defines persistence operations for booking aggregates.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByIDForUser(id, userID string) (*models.Booking, error)
	ListByUser(userID string) ([]models.Booking, error)
	// ListActiveByDog returns all non-cancelled bookings that reference the dog.
	ListActiveByDog(dogID string) ([]models.Booking, error)
	// ListUnpaidActiveByUser returns the user's unpaid, non-cancelled bookings.
	ListUnpaidActiveByUser(userID string) ([]models.Booking, error)
	Update(booking *models.Booking) error
}
