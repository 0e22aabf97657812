package booking

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/services/catalog"
)

// GenerateReferenceCode produces a human-readable booking reference in the
// form "KS-<year>-<6 digits>". Uniqueness is enforced by the unique index on
// the bookings collection; callers retry on a duplicate-key insert.
func GenerateReferenceCode(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("KS-%d-%06d", now.Year(), 100000+rng.Intn(900000))
}

// DeriveState recomputes every derived field of a booking. It is pure given
// (booking, now) and runs immediately before every persist, whether from a
// create, cancel or reschedule. The step order matters: the cancellation
// cascade must see a freshly derived Cancelled status, and the payment guard
// must run last so it overrides any stale Paid flag.
func DeriveState(b *models.Booking, now time.Time) {
	for di := range b.Bookings {
		dog := &b.Bookings[di]
		for si := range dog.Services {
			svc := &dog.Services[si]
			projectTrainingEndDate(svc)
			deriveServiceProgress(svc, now)
		}
	}

	deriveBookingStatus(b)
	applyCancellationCascade(b, now)
	enforcePaymentRules(b)
}

// projectTrainingEndDate fills the end date of a training stay from the
// package's week count when only a start date was supplied.
func projectTrainingEndDate(svc *models.BookingService) {
	if svc.Service != models.ServiceTraining || svc.StartDate == nil || svc.EndDate != nil {
		return
	}
	weeks := catalog.TrainingWeeks(svc.PackageName)
	if weeks <= 0 {
		return
	}
	end := svc.StartDate.AddDate(0, 0, weeks*7)
	svc.EndDate = &end
}

// deriveServiceProgress advances a service's progress from its timestamps.
// Rescheduled entries are frozen until an operator clears them.
func deriveServiceProgress(svc *models.BookingService, now time.Time) {
	if svc.ServiceStatus == models.ServiceRescheduled {
		return
	}

	if svc.ServiceStatus == models.ServiceCancelled {
		svc.Progress = models.ProgressTerminated
		if svc.CancelledAt == nil {
			at := now
			svc.CancelledAt = &at
		}
		return
	}

	switch svc.Service {
	case models.ServiceTraining, models.ServiceBoarding:
		switch {
		case svc.CheckOutAt != nil:
			svc.Progress = models.ProgressCompleted
			svc.ServiceStatus = models.ServiceDone
		case svc.EndDate != nil && now.After(*svc.EndDate):
			svc.Progress = models.ProgressReadyForPickup
		case svc.CheckInAt != nil:
			svc.Progress = models.ProgressInProgress
		default:
			svc.Progress = models.ProgressAwaitingArrival
		}
	case models.ServiceGrooming:
		switch {
		case svc.CompletedAt != nil:
			svc.Progress = models.ProgressCompleted
			svc.ServiceStatus = models.ServiceDone
		case svc.ServiceDate != nil && sameDay(*svc.ServiceDate, now):
			svc.Progress = models.ProgressInProgress
		default:
			svc.Progress = models.ProgressNotDone
		}
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// deriveBookingStatus rolls the per-service statuses up into the aggregate
// booking status.
func deriveBookingStatus(b *models.Booking) {
	totalServices := 0
	activeServices := 0
	finishedServices := 0
	hasCancelledService := false

	for _, dog := range b.Bookings {
		for _, svc := range dog.Services {
			totalServices++
			switch {
			case svc.ServiceStatus == models.ServiceDone:
				finishedServices++
				activeServices++
			case svc.ServiceStatus != models.ServiceCancelled:
				activeServices++
			default:
				hasCancelledService = true
			}
		}
	}

	// A cancelled service invalidates the confirmation; the booking goes back
	// for re-review.
	if b.Status == models.BookingConfirmed && hasCancelledService {
		b.Status = models.BookingPending
	}

	if b.Status == models.BookingPending && activeServices == 0 && totalServices > 0 {
		b.Status = models.BookingCancelled
	}

	allServicesDone := totalServices > 0 && finishedServices == totalServices
	isPaid := b.PaymentStatus == models.PaymentPaid

	if allServicesDone && isPaid && b.Status != models.BookingCancelled {
		b.Status = models.BookingCompleted
	} else if b.Status == models.BookingCompleted && (!allServicesDone || !isPaid) {
		b.Status = models.BookingConfirmed
	}
}

// applyCancellationCascade zeroes the total and terminates every service once
// a booking is cancelled, whether by command or derivation.
func applyCancellationCascade(b *models.Booking, now time.Time) {
	if b.Status != models.BookingCancelled {
		return
	}

	b.TotalAmount = 0
	for di := range b.Bookings {
		dog := &b.Bookings[di]
		for si := range dog.Services {
			svc := &dog.Services[si]
			svc.ServiceStatus = models.ServiceCancelled
			svc.Progress = models.ProgressTerminated
			if svc.CancelledAt == nil {
				at := now
				svc.CancelledAt = &at
			}
		}
	}
}

// enforcePaymentRules resets payment status for bookings that are not in a
// payable state.
func enforcePaymentRules(b *models.Booking) {
	if b.Status == models.BookingPending || b.Status == models.BookingCancelled {
		b.PaymentStatus = models.PaymentUnpaid
	}
}
