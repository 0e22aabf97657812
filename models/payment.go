package models

import "time"

// PaymentState is the processing state of a single payment attempt.
type PaymentState string

const (
	PaymentStatePending PaymentState = "Pending"
	PaymentStateSuccess PaymentState = "Success"
	PaymentStateFailed  PaymentState = "Failed"
)

// Payment records one payment made against a booking.
type Payment struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"booking_id" json:"bookingId"`
	UserID    string `bson:"user_id" json:"userId"`
	Amount    int64  `bson:"amount" json:"amount"`

	Status        PaymentState `bson:"status" json:"status"`
	PaymentMethod string       `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	PaidAt        *time.Time   `bson:"paid_at,omitempty" json:"paidAt,omitempty"`

	ReferenceCode string `bson:"reference_code" json:"referenceCode"`

	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
	IsRefunded bool   `bson:"is_refunded" json:"isRefunded"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
