package models

import "time"

// ActivityType enumerates the audited booking actions.
type ActivityType string

const (
	ActivityBookingCreated     ActivityType = "Booking Created"
	ActivityBookingCancelled   ActivityType = "Booking Cancelled"
	ActivityBookingRescheduled ActivityType = "Booking Rescheduled"
	ActivityServiceCancelled   ActivityType = "Service Cancelled"
	ActivityServiceRescheduled ActivityType = "Service Rescheduled"
)

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityBookingCreated, ActivityBookingCancelled, ActivityBookingRescheduled,
		ActivityServiceCancelled, ActivityServiceRescheduled:
		return true
	}
	return false
}

// Activity is an audit record of a user action.
type Activity struct {
	ID          string       `bson:"id" json:"id"`
	UserID      string       `bson:"user_id" json:"userId"`
	ActionType  ActivityType `bson:"action_type" json:"actionType"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	RelatedID   string       `bson:"related_id,omitempty" json:"relatedId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
