package models

import "time"

// ServiceInstance is a denormalized per-service record mirrored from a booking.
// It exists for cross-cutting queries (by user, dog, service type) and
// analytics; the embedded booking service entry stays authoritative.
type ServiceInstance struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"booking_id" json:"bookingId"`
	DogID     string `bson:"dog_id" json:"dogId"`
	UserID    string `bson:"user_id" json:"userId"`

	ServiceName ServiceType `bson:"service_name" json:"serviceName"`
	PackageName string      `bson:"package_name" json:"packageName"`
	Price       int64       `bson:"price" json:"price"`

	ServiceStatus ServiceStatus `bson:"service_status" json:"serviceStatus"`
	Progress      Progress      `bson:"progress" json:"progress"`

	ServiceDate *time.Time `bson:"service_date,omitempty" json:"serviceDate,omitempty"`
	StartDate   *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	CheckInAt   *time.Time `bson:"check_in_at,omitempty" json:"checkInAt,omitempty"`
	CheckOutAt  *time.Time `bson:"check_out_at,omitempty" json:"checkOutAt,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`

	LocationType     string `bson:"location_type,omitempty" json:"locationType,omitempty"`
	PickupPreference string `bson:"pickup_preference,omitempty" json:"pickupPreference,omitempty"`
	Notes            string `bson:"notes" json:"notes"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
