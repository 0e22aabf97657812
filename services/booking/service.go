package booking

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	activityRepo "github.com/KasenaM/kisite-canines/database/repository/activity"
	bookingRepo "github.com/KasenaM/kisite-canines/database/repository/booking"
	dogRepo "github.com/KasenaM/kisite-canines/database/repository/dog"
	instanceRepo "github.com/KasenaM/kisite-canines/database/repository/instance"
	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/services/catalog"
	"github.com/KasenaM/kisite-canines/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReferenceCodeAttempts bounds the retry loop when a generated reference
// code collides with the unique index.
const maxReferenceCodeAttempts = 5

// BookingService exposes the booking commands and queries.
type BookingService interface {
	Create(userID string, input CreateBookingInput) (*models.Booking, error)
	ListMine(userID string) ([]models.Booking, error)
	CancelBooking(userID, bookingID string) (*models.Booking, error)
	RescheduleBooking(userID, bookingID string, updates []ServiceUpdate) (*models.Booking, error)
	CancelService(userID, bookingID, dogItemID string, serviceIndex int) (*models.Booking, error)
	RescheduleService(userID, bookingID, dogItemID string, serviceIndex int, update ServiceUpdate) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	InstanceRepo instanceRepo.InstanceRepository
	ActivityRepo activityRepo.ActivityRepository
	DogRepo      dogRepo.DogRepository

	// Rand and Now are injectable for deterministic tests; nil/zero values
	// fall back to real randomness and the wall clock.
	Rand *rand.Rand
	Now  func() time.Time
}

// CreateServiceInput is one requested service for one dog.
type CreateServiceInput struct {
	Service     models.ServiceType `json:"service"`
	PackageName string             `json:"packageName"`
	Price       int64              `json:"price"`

	ServiceDate *time.Time `json:"serviceDate,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`

	LocationType string `json:"locationType,omitempty"`
	Notes        string `json:"notes"`
}

// CreateDogInput groups the requested services for one dog.
type CreateDogInput struct {
	DogID    string               `json:"dogId"`
	DogName  string               `json:"dogName,omitempty"`
	Services []CreateServiceInput `json:"services"`
}

// CreateBookingInput is the checkout payload.
type CreateBookingInput struct {
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	PickupPreference string           `json:"pickupPreference,omitempty"`
	Bookings         []CreateDogInput `json:"bookings"`
}

// ServiceUpdate targets one embedded service for a reschedule.
type ServiceUpdate struct {
	DogID        string     `json:"dogId"`
	ServiceIndex int        `json:"serviceIndex"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	ServiceDate  *time.Time `json:"serviceDate,omitempty"`
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.Rand
}

// resolvePrice derives a service price from the catalog when the package is
// known; the client-supplied price is kept only for off-catalog packages.
// Boarding prices are a nightly rate, billed per night with a one-night floor.
func resolvePrice(input CreateServiceInput) int64 {
	unit, ok := catalog.PackagePrice(input.Service, input.PackageName)
	if !ok {
		return input.Price
	}
	if input.Service == models.ServiceBoarding && input.StartDate != nil {
		end := *input.StartDate
		if input.EndDate != nil {
			end = *input.EndDate
		}
		return catalog.BoardingTotal(unit, *input.StartDate, end)
	}
	return unit
}

// Create validates the checkout payload, rejects conflicting date ranges and
// persists the booking plus its fanned-out service instances.
func (s *DefaultBookingService) Create(userID string, input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if len(input.Bookings) == 0 {
		return nil, NewValidationError("No services selected")
	}

	hasResidential := false
	for _, dog := range input.Bookings {
		if len(dog.Services) == 0 {
			name := dog.DogName
			if name == "" {
				name = dog.DogID
			}
			return nil, NewValidationError("Dog %s must have at least one service.", name)
		}

		residentialCount := 0
		for _, svc := range dog.Services {
			if !svc.Service.IsValid() {
				return nil, NewValidationError("Unknown service type %q.", string(svc.Service))
			}
			if len(strings.TrimSpace(svc.Notes)) < 5 {
				return nil, NewValidationError("Notes must be at least 5 characters for %s.", svc.Service)
			}
			if svc.Service.IsResidential() {
				hasResidential = true
				residentialCount++
			}
		}
		// One residential stay per dog per booking; a dog cannot board and
		// train at the same time.
		if residentialCount > 1 {
			return nil, NewValidationError("A dog can have at most one Training or Boarding service per booking.")
		}
	}

	if hasResidential && input.PickupPreference == "" {
		return nil, NewValidationError("Pickup/Drop-off preference required for Training or Boarding.")
	}

	// Reject the whole request on the first overlap found, before any write.
	for _, dog := range input.Bookings {
		for i := range dog.Services {
			svc := buildService(dog.Services[i])
			candidate, ok := serviceDateRange(&svc)
			if !ok {
				continue
			}
			conflict, err := s.HasConflict(dog.DogID, svc.Service, candidate)
			if err != nil {
				return nil, fmt.Errorf("conflict check failed: %w", err)
			}
			if conflict {
				return nil, &ConflictError{Service: svc.Service}
			}
		}
	}

	now := s.now()
	newBooking := &models.Booking{
		ID:               uuid.New().String(),
		UserID:           userID,
		Phone:            input.Phone,
		Address:          input.Address,
		PickupPreference: input.PickupPreference,
		Status:           models.BookingPending,
		PaymentStatus:    models.PaymentUnpaid,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var total int64
	for _, dog := range input.Bookings {
		entry := models.DogBooking{
			ID:      uuid.New().String(),
			DogID:   dog.DogID,
			DogName: dog.DogName,
		}
		for i := range dog.Services {
			svc := buildService(dog.Services[i])
			svc.Price = resolvePrice(dog.Services[i])
			total += svc.Price
			entry.Services = append(entry.Services, svc)
		}
		newBooking.Bookings = append(newBooking.Bookings, entry)
	}
	newBooking.TotalAmount = total

	DeriveState(newBooking, now)

	// The unique index on reference_code is the real uniqueness guard; a
	// collision comes back as a duplicate-key insert and we retry with a
	// fresh code.
	var err error
	for attempt := 0; attempt < maxReferenceCodeAttempts; attempt++ {
		newBooking.ReferenceCode = GenerateReferenceCode(now, s.rng())
		err = s.Repo.Create(newBooking)
		if err != bookingRepo.ErrDuplicateReferenceCode {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if err := s.InstanceRepo.InsertMany(s.fanOutInstances(newBooking, now)); err != nil {
		// The booking is authoritative; the projection is an advisory cache.
		// A failed mirror write is logged for monitoring, not rolled back.
		logger.Error("service instance fan-out failed",
			zap.String("bookingId", newBooking.ID), zap.Error(err))
	}

	s.audit(userID, models.ActivityBookingCreated,
		fmt.Sprintf("New booking created. Total KES %d", newBooking.TotalAmount), newBooking.ID)

	return newBooking, nil
}

func buildService(input CreateServiceInput) models.BookingService {
	return models.BookingService{
		Service:       input.Service,
		PackageName:   input.PackageName,
		Price:         input.Price,
		ServiceDate:   input.ServiceDate,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		LocationType:  input.LocationType,
		Notes:         input.Notes,
		ServiceStatus: models.ServiceScheduled,
		Progress:      models.ProgressNotDone,
	}
}

func (s *DefaultBookingService) fanOutInstances(b *models.Booking, now time.Time) []models.ServiceInstance {
	var instances []models.ServiceInstance
	for _, dog := range b.Bookings {
		for _, svc := range dog.Services {
			instances = append(instances, models.ServiceInstance{
				ID:               uuid.New().String(),
				BookingID:        b.ID,
				DogID:            dog.DogID,
				UserID:           b.UserID,
				ServiceName:      svc.Service,
				PackageName:      svc.PackageName,
				Price:            svc.Price,
				ServiceStatus:    models.ServiceScheduled,
				Progress:         models.ProgressNotDone,
				ServiceDate:      svc.ServiceDate,
				StartDate:        svc.StartDate,
				EndDate:          svc.EndDate,
				LocationType:     svc.LocationType,
				PickupPreference: b.PickupPreference,
				Notes:            svc.Notes,
				CreatedAt:        now,
				UpdatedAt:        now,
			})
		}
	}
	return instances
}

// ListMine returns the caller's bookings, most recent first, with dog
// references resolved.
func (s *DefaultBookingService) ListMine(userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		for j := range bookings[i].Bookings {
			entry := &bookings[i].Bookings[j]
			if dog, err := s.DogRepo.GetByID(entry.DogID); err == nil {
				entry.Dog = dog
			}
		}
	}
	return bookings, nil
}

// CancelBooking cancels the whole booking, cascading to every service and the
// mirrored instances.
func (s *DefaultBookingService) CancelBooking(userID, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Repo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b.Status = models.BookingCancelled
	DeriveState(b, now)
	b.UpdatedAt = now

	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}

	if err := s.InstanceRepo.CancelAllForBooking(b.ID, now); err != nil {
		logger.Error("service instance cancel mirror failed",
			zap.String("bookingId", b.ID), zap.Error(err))
	}

	s.audit(userID, models.ActivityBookingCancelled, "Booking cancelled", b.ID)
	return b, nil
}

// RescheduleBooking overwrites dates on the targeted services and freezes
// them as Rescheduled until an operator clears them.
func (s *DefaultBookingService) RescheduleBooking(userID, bookingID string, updates []ServiceUpdate) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Repo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, update := range updates {
		dog := findDogEntry(b, update.DogID)
		if dog == nil || update.ServiceIndex < 0 || update.ServiceIndex >= len(dog.Services) {
			continue
		}
		svc := &dog.Services[update.ServiceIndex]
		applyReschedule(svc, update)

		if err := s.InstanceRepo.Reschedule(b.ID, dog.DogID, svc.Service,
			svc.ServiceDate, svc.StartDate, svc.EndDate); err != nil {
			logger.Error("service instance reschedule mirror failed",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	DeriveState(b, now)
	b.UpdatedAt = now
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}

	s.audit(userID, models.ActivityBookingRescheduled, "Booking rescheduled", b.ID)
	return b, nil
}

// CancelService cancels a single embedded service. Booking-level derivation
// may demote a Confirmed booking back to Pending for re-review.
func (s *DefaultBookingService) CancelService(userID, bookingID, dogItemID string, serviceIndex int) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Repo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, err
	}

	dog := findDogEntry(b, dogItemID)
	if dog == nil || serviceIndex < 0 || serviceIndex >= len(dog.Services) {
		return nil, ErrServiceNotFound
	}
	svc := &dog.Services[serviceIndex]

	now := s.now()
	svc.ServiceStatus = models.ServiceCancelled
	svc.Progress = models.ProgressTerminated

	DeriveState(b, now)
	b.UpdatedAt = now
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}

	if err := s.InstanceRepo.MarkCancelled(b.ID, dog.DogID, svc.Service, now); err != nil {
		logger.Error("service instance cancel mirror failed",
			zap.String("bookingId", b.ID), zap.Error(err))
	}

	s.audit(userID, models.ActivityServiceCancelled,
		fmt.Sprintf("%s cancelled", svc.Service), b.ID)
	return b, nil
}

// RescheduleService reschedules a single embedded service.
func (s *DefaultBookingService) RescheduleService(userID, bookingID, dogItemID string, serviceIndex int, update ServiceUpdate) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Repo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, err
	}

	dog := findDogEntry(b, dogItemID)
	if dog == nil || serviceIndex < 0 || serviceIndex >= len(dog.Services) {
		return nil, ErrServiceNotFound
	}
	svc := &dog.Services[serviceIndex]

	now := s.now()
	applyReschedule(svc, update)

	DeriveState(b, now)
	b.UpdatedAt = now
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}

	if err := s.InstanceRepo.Reschedule(b.ID, dog.DogID, svc.Service,
		svc.ServiceDate, svc.StartDate, svc.EndDate); err != nil {
		logger.Error("service instance reschedule mirror failed",
			zap.String("bookingId", b.ID), zap.Error(err))
	}

	s.audit(userID, models.ActivityServiceRescheduled,
		fmt.Sprintf("%s rescheduled", svc.Service), b.ID)
	return b, nil
}

// findDogEntry matches a dog entry by its own id or by the referenced dog id.
func findDogEntry(b *models.Booking, id string) *models.DogBooking {
	for i := range b.Bookings {
		if b.Bookings[i].ID == id || b.Bookings[i].DogID == id {
			return &b.Bookings[i]
		}
	}
	return nil
}

// applyReschedule overwrites date fields and freezes the entry pending
// operator review; the freeze exempts it from automatic progress derivation.
func applyReschedule(svc *models.BookingService, update ServiceUpdate) {
	if update.StartDate != nil {
		svc.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		svc.EndDate = update.EndDate
	}
	if update.ServiceDate != nil {
		svc.ServiceDate = update.ServiceDate
	}
	svc.ServiceStatus = models.ServiceRescheduled
	svc.Progress = models.ProgressAwaitingArrival
}

func (s *DefaultBookingService) audit(userID string, action models.ActivityType, description, relatedID string) {
	logger := utils.GetLogger()
	activity := &models.Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		ActionType:  action,
		Description: description,
		RelatedID:   relatedID,
		CreatedAt:   s.now(),
	}
	if err := s.ActivityRepo.Create(activity); err != nil {
		logger.Error("failed to write audit record",
			zap.String("action", string(action)), zap.Error(err))
	}
}
