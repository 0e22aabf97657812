package instanceRepo

import (
	"time"

	"github.com/KasenaM/kisite-canines/models"
)

// InstanceRepository defines persistence operations for the per-service
// projection records fanned out from bookings.
type InstanceRepository interface {
	InsertMany(instances []models.ServiceInstance) error
	GetByID(id string) (*models.ServiceInstance, error)
	ListAll() ([]models.ServiceInstance, error)
	ListByUser(userID string) ([]models.ServiceInstance, error)
	ListByDog(dogID string) ([]models.ServiceInstance, error)
	ListByService(service models.ServiceType) ([]models.ServiceInstance, error)

	// MarkCancelled mirrors a single-service cancellation into the projection.
	MarkCancelled(bookingID, dogID string, service models.ServiceType, at time.Time) error
	// Reschedule mirrors new dates and the Rescheduled freeze into the projection.
	Reschedule(bookingID, dogID string, service models.ServiceType, serviceDate, startDate, endDate *time.Time) error
	// CancelAllForBooking mirrors a full-booking cancellation into the projection.
	CancelAllForBooking(bookingID string, at time.Time) error
}
