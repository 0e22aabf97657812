package models

import "time"

// ServiceType is the closed set of services the kennel offers.
type ServiceType string

const (
	ServiceTraining ServiceType = "Training"
	ServiceBoarding ServiceType = "Boarding"
	ServiceGrooming ServiceType = "Grooming"
)

// IsValid reports whether the service type is one of the known services.
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTraining, ServiceBoarding, ServiceGrooming:
		return true
	}
	return false
}

// IsResidential reports whether the dog stays on the premises for this service.
// Residential services require a pickup/drop-off preference on the booking.
func (s ServiceType) IsResidential() bool {
	return s == ServiceTraining || s == ServiceBoarding
}

// BookingStatus is the derived aggregate status of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks how much of the booking has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "Unpaid"
	PaymentPaid          PaymentStatus = "Paid"
	PaymentRefunded      PaymentStatus = "Refunded"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded, PaymentPartiallyPaid:
		return true
	}
	return false
}

// ServiceStatus is the per-service scheduling status.
type ServiceStatus string

const (
	ServiceScheduled   ServiceStatus = "Scheduled"
	ServiceRescheduled ServiceStatus = "Rescheduled"
	ServiceCancelled   ServiceStatus = "Cancelled"
	ServiceDone        ServiceStatus = "Done"
)

func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServiceScheduled, ServiceRescheduled, ServiceCancelled, ServiceDone:
		return true
	}
	return false
}

// Progress is the per-service delivery progress, derived from timestamps.
type Progress string

const (
	ProgressNotDone         Progress = "Not Done"
	ProgressAwaitingArrival Progress = "Awaiting Arrival"
	ProgressInProgress      Progress = "In Progress"
	ProgressReadyForPickup  Progress = "Ready for Pickup"
	ProgressCompleted       Progress = "Completed"
	ProgressTerminated      Progress = "Terminated"
)

func (p Progress) IsValid() bool {
	switch p {
	case ProgressNotDone, ProgressAwaitingArrival, ProgressInProgress,
		ProgressReadyForPickup, ProgressCompleted, ProgressTerminated:
		return true
	}
	return false
}

// BookingService is one booked service for one dog within a booking.
// Grooming uses ServiceDate; Training and Boarding use StartDate/EndDate.
type BookingService struct {
	Service     ServiceType `bson:"service" json:"service"`
	PackageName string      `bson:"package_name" json:"packageName"`
	Price       int64       `bson:"price" json:"price"`

	ServiceDate *time.Time `bson:"service_date,omitempty" json:"serviceDate,omitempty"`
	StartDate   *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`

	LocationType     string `bson:"location_type,omitempty" json:"locationType,omitempty"`
	PickupPreference string `bson:"pickup_preference,omitempty" json:"pickupPreference,omitempty"`
	Notes            string `bson:"notes" json:"notes"`

	ServiceStatus ServiceStatus `bson:"service_status" json:"serviceStatus"`
	Progress      Progress      `bson:"progress" json:"progress"`

	CheckInAt   *time.Time `bson:"check_in_at,omitempty" json:"checkInAt,omitempty"`
	CheckOutAt  *time.Time `bson:"check_out_at,omitempty" json:"checkOutAt,omitempty"`
	StartedAt   *time.Time `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}

// DogBooking groups the services booked for a single dog.
type DogBooking struct {
	ID       string           `bson:"id" json:"id"`
	DogID    string           `bson:"dog_id" json:"dogId"`
	DogName  string           `bson:"dog_name,omitempty" json:"dogName,omitempty"`
	Dog      *Dog             `bson:"-" json:"dog,omitempty"`
	Services []BookingService `bson:"services" json:"services"`
}

// Booking is the aggregate root: one document per checkout transaction.
type Booking struct {
	ID            string       `bson:"id" json:"id"`
	ReferenceCode string       `bson:"reference_code,omitempty" json:"referenceCode,omitempty"`
	UserID        string       `bson:"user_id" json:"userId"`
	Phone         string       `bson:"phone" json:"phone"`
	Address       string       `bson:"address" json:"address"`
	Bookings      []DogBooking `bson:"bookings" json:"bookings"`
	TotalAmount   int64        `bson:"total_amount" json:"totalAmount"`

	PickupPreference string `bson:"pickup_preference,omitempty" json:"pickupPreference,omitempty"`

	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"paymentStatus"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasResidentialService reports whether any contained service keeps the dog overnight.
func (b *Booking) HasResidentialService() bool {
	for _, dog := range b.Bookings {
		for _, svc := range dog.Services {
			if svc.Service.IsResidential() {
				return true
			}
		}
	}
	return false
}
