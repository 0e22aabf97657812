package booking

import (
	"time"

	"github.com/KasenaM/kisite-canines/models"
)

// dateRange is an inclusive calendar range occupied by a service.
type dateRange struct {
	start time.Time
	end   time.Time
}

// serviceDateRange computes the range a service entry occupies. Grooming is a
// single day; residential services run from start to end (or start when no
// end date is set yet). Entries without dates occupy nothing.
func serviceDateRange(svc *models.BookingService) (dateRange, bool) {
	switch svc.Service {
	case models.ServiceTraining, models.ServiceBoarding:
		if svc.StartDate == nil {
			return dateRange{}, false
		}
		end := *svc.StartDate
		if svc.EndDate != nil {
			end = *svc.EndDate
		}
		return dateRange{start: *svc.StartDate, end: end}, true
	case models.ServiceGrooming:
		if svc.ServiceDate == nil {
			return dateRange{}, false
		}
		return dateRange{start: *svc.ServiceDate, end: *svc.ServiceDate}, true
	}
	return dateRange{}, false
}

// rangesOverlap tests inclusive overlap. Touching ranges (same-day
// checkout/checkin) count as overlapping: same-day turnover of kennel space
// is disallowed.
func rangesOverlap(a, b dateRange) bool {
	return !a.start.After(b.end) && !b.start.After(a.end)
}

// HasConflict reports whether the candidate range overlaps any existing
// non-cancelled booking of the same service type for the dog.
func (s *DefaultBookingService) HasConflict(dogID string, service models.ServiceType, candidate dateRange) (bool, error) {
	existing, err := s.Repo.ListActiveByDog(dogID)
	if err != nil {
		return false, err
	}

	for i := range existing {
		for _, dog := range existing[i].Bookings {
			if dog.DogID != dogID {
				continue
			}
			for j := range dog.Services {
				svc := &dog.Services[j]
				if svc.Service != service || svc.ServiceStatus == models.ServiceCancelled {
					continue
				}
				existingRange, ok := serviceDateRange(svc)
				if !ok {
					continue
				}
				if rangesOverlap(candidate, existingRange) {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
