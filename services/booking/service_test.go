package booking

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	bookingRepo "github.com/KasenaM/kisite-canines/database/repository/booking"
	dogRepo "github.com/KasenaM/kisite-canines/database/repository/dog"
	"github.com/KasenaM/kisite-canines/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings []models.Booking

	// failDuplicates makes the next N Create calls fail with a duplicate
	// reference code, exercising the retry loop.
	failDuplicates int
	createCalls    int
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	f.createCalls++
	if f.failDuplicates > 0 {
		f.failDuplicates--
		return bookingRepo.ErrDuplicateReferenceCode
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByIDForUser(id, userID string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id && f.bookings[i].UserID == userID {
			copied := f.bookings[i]
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) ListByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListActiveByDog(dogID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		for _, dog := range b.Bookings {
			if dog.DogID == dogID {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListUnpaidActiveByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.Status != models.BookingCancelled && b.PaymentStatus == models.PaymentUnpaid {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(b *models.Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// fakeInstanceRepo records mirror operations against the projection.
type fakeInstanceRepo struct {
	instances        []models.ServiceInstance
	cancelledEntries int
	rescheduled      int
	cancelledCalls   []string
}

func (f *fakeInstanceRepo) InsertMany(instances []models.ServiceInstance) error {
	f.instances = append(f.instances, instances...)
	return nil
}

func (f *fakeInstanceRepo) GetByID(id string) (*models.ServiceInstance, error) {
	for i := range f.instances {
		if f.instances[i].ID == id {
			return &f.instances[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInstanceRepo) ListAll() ([]models.ServiceInstance, error) { return f.instances, nil }
func (f *fakeInstanceRepo) ListByUser(string) ([]models.ServiceInstance, error) {
	return f.instances, nil
}
func (f *fakeInstanceRepo) ListByDog(string) ([]models.ServiceInstance, error) {
	return f.instances, nil
}
func (f *fakeInstanceRepo) ListByService(models.ServiceType) ([]models.ServiceInstance, error) {
	return f.instances, nil
}

func (f *fakeInstanceRepo) MarkCancelled(bookingID, dogID string, service models.ServiceType, at time.Time) error {
	f.cancelledEntries++
	return nil
}

func (f *fakeInstanceRepo) Reschedule(bookingID, dogID string, service models.ServiceType, serviceDate, startDate, endDate *time.Time) error {
	f.rescheduled++
	return nil
}

func (f *fakeInstanceRepo) CancelAllForBooking(bookingID string, at time.Time) error {
	f.cancelledCalls = append(f.cancelledCalls, bookingID)
	return nil
}

// fakeActivityRepo records written audit entries.
type fakeActivityRepo struct {
	activities []models.Activity
}

func (f *fakeActivityRepo) Create(a *models.Activity) error {
	f.activities = append(f.activities, *a)
	return nil
}

func (f *fakeActivityRepo) RecentByUser(userID string, limit int64) ([]models.Activity, error) {
	return f.activities, nil
}

func (f *fakeActivityRepo) Recent(limit int64) ([]models.Activity, error) {
	return f.activities, nil
}

func (f *fakeActivityRepo) ListByUserBetween(userID string, start, end time.Time) ([]models.Activity, error) {
	return f.activities, nil
}

// fakeDogRepo resolves dogs by id.
type fakeDogRepo struct {
	dogs map[string]models.Dog
}

func (f *fakeDogRepo) Create(*models.Dog) error { return nil }
func (f *fakeDogRepo) Update(*models.Dog) error { return nil }
func (f *fakeDogRepo) GetByIDForOwner(id, ownerID string) (*models.Dog, error) {
	return f.GetByID(id)
}
func (f *fakeDogRepo) GetByID(id string) (*models.Dog, error) {
	if d, ok := f.dogs[id]; ok {
		return &d, nil
	}
	return nil, dogRepo.ErrDogNotFound
}
func (f *fakeDogRepo) ListByOwner(string) ([]models.Dog, error) { return nil, nil }
func (f *fakeDogRepo) CountByOwner(string) (int64, error) { return 0, nil }
func (f *fakeDogRepo) CountAll() (int64, error) { return 0, nil }
func (f *fakeDogRepo) DistinctOwnerIDs() ([]string, error) { return nil, nil }

func newTestService(repo *fakeBookingRepo, instances *fakeInstanceRepo, now time.Time) (*DefaultBookingService, *fakeActivityRepo) {
	activities := &fakeActivityRepo{}
	return &DefaultBookingService{
		Repo:         repo,
		InstanceRepo: instances,
		ActivityRepo: activities,
		DogRepo:      &fakeDogRepo{dogs: map[string]models.Dog{}},
		Rand:         rand.New(rand.NewSource(42)),
		Now:          func() time.Time { return now },
	}, activities
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		Phone:            "+254700000000",
		Address:          "Nairobi",
		PickupPreference: "Drop-off",
		Bookings: []CreateDogInput{{
			DogID:   "dog-1",
			DogName: "Simba",
			Services: []CreateServiceInput{{
				Service:     models.ServiceTraining,
				PackageName: "Obedience Training",
				StartDate:   timePtr(date(2024, time.March, 1)),
				Notes:       "Needs leash training",
			}},
		}},
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	instances := &fakeInstanceRepo{}
	svc, activities := newTestService(repo, instances, now)

	created, err := svc.Create("user-1", validInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^KS-2024-\d{6}$`), created.ReferenceCode)
	assert.Equal(t, models.BookingPending, created.Status)
	assert.Equal(t, models.PaymentUnpaid, created.PaymentStatus)
	assert.Equal(t, int64(12000), created.TotalAmount)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)

	// Training end date projected from the package's week count.
	projected := created.Bookings[0].Services[0].EndDate
	require.NotNil(t, projected)
	assert.Equal(t, date(2024, time.March, 29), *projected)

	// One instance fanned out, scheduled and not started.
	require.Len(t, instances.instances, 1)
	inst := instances.instances[0]
	assert.Equal(t, created.ID, inst.BookingID)
	assert.Equal(t, models.ServiceScheduled, inst.ServiceStatus)
	assert.Equal(t, models.ProgressNotDone, inst.Progress)

	// Audit record written.
	require.Len(t, activities.activities, 1)
	assert.Equal(t, models.ActivityBookingCreated, activities.activities[0].ActionType)
}

func TestCreateBookingResolvesCatalogPrice(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	svc, _ := newTestService(repo, &fakeInstanceRepo{}, now)

	input := validInput()
	input.Bookings[0].Services[0].Price = 999 // client-side tampering is ignored

	created, err := svc.Create("user-1", input)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), created.Bookings[0].Services[0].Price)
	assert.Equal(t, int64(12000), created.TotalAmount)
}

func TestCreateBookingBillsBoardingPerNight(t *testing.T) {
	now := date(2024, time.February, 1)
	svc, _ := newTestService(&fakeBookingRepo{}, &fakeInstanceRepo{}, now)

	input := validInput()
	input.Bookings[0].Services = []CreateServiceInput{{
		Service:     models.ServiceBoarding,
		PackageName: "Standard Suite",
		StartDate:   timePtr(date(2024, time.March, 1)),
		EndDate:     timePtr(date(2024, time.March, 4)),
		Notes:       "Bring own bedding",
	}}

	created, err := svc.Create("user-1", input)
	require.NoError(t, err)
	// 3 nights at the nightly rate.
	assert.Equal(t, int64(3*1500), created.TotalAmount)
}

func TestCreateBookingValidation(t *testing.T) {
	now := date(2024, time.February, 1)
	svc, _ := newTestService(&fakeBookingRepo{}, &fakeInstanceRepo{}, now)

	t.Run("no services selected", func(t *testing.T) {
		_, err := svc.Create("user-1", CreateBookingInput{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("dog without services", func(t *testing.T) {
		input := validInput()
		input.Bookings[0].Services = nil
		_, err := svc.Create("user-1", input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown service type", func(t *testing.T) {
		input := validInput()
		input.Bookings[0].Services[0].Service = "Daycare"
		_, err := svc.Create("user-1", input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("notes too short", func(t *testing.T) {
		input := validInput()
		input.Bookings[0].Services[0].Notes = "ok"
		_, err := svc.Create("user-1", input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("two residential services for one dog", func(t *testing.T) {
		input := validInput()
		input.Bookings[0].Services = append(input.Bookings[0].Services, CreateServiceInput{
			Service:     models.ServiceBoarding,
			PackageName: "Standard Suite",
			StartDate:   timePtr(date(2024, time.May, 1)),
			Notes:       "Second stay same dog",
		})
		_, err := svc.Create("user-1", input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("residential without pickup preference", func(t *testing.T) {
		input := validInput()
		input.PickupPreference = ""
		_, err := svc.Create("user-1", input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestCreateBookingRejectsConflict(t *testing.T) {
	now := date(2024, time.February, 1)
	start := date(2024, time.March, 10)
	end := date(2024, time.April, 5)
	repo := &fakeBookingRepo{bookings: []models.Booking{{
		ID:     "existing",
		UserID: "user-1",
		Status: models.BookingConfirmed,
		Bookings: []models.DogBooking{{
			DogID: "dog-1",
			Services: []models.BookingService{{
				Service:       models.ServiceTraining,
				StartDate:     &start,
				EndDate:       &end,
				ServiceStatus: models.ServiceScheduled,
			}},
		}},
	}}}
	instances := &fakeInstanceRepo{}
	svc, activities := newTestService(repo, instances, now)

	_, err := svc.Create("user-1", validInput())

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, models.ServiceTraining, conflictErr.Service)

	// Nothing was written.
	assert.Len(t, repo.bookings, 1)
	assert.Empty(t, instances.instances)
	assert.Empty(t, activities.activities)
}

func TestCreateBookingRetriesOnDuplicateReferenceCode(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{failDuplicates: 2}
	svc, _ := newTestService(repo, &fakeInstanceRepo{}, now)

	created, err := svc.Create("user-1", validInput())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
	assert.NotEmpty(t, created.ReferenceCode)
}

func TestCancelBookingCascades(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	instances := &fakeInstanceRepo{}
	svc, activities := newTestService(repo, instances, now)

	created, err := svc.Create("user-1", validInput())
	require.NoError(t, err)

	// Force a paid booking to verify the payment reset on cancellation.
	repo.bookings[0].PaymentStatus = models.PaymentPaid

	cancelled, err := svc.CancelBooking("user-1", created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, int64(0), cancelled.TotalAmount)
	assert.Equal(t, models.PaymentUnpaid, cancelled.PaymentStatus)
	for _, dog := range cancelled.Bookings {
		for _, s := range dog.Services {
			assert.Equal(t, models.ServiceCancelled, s.ServiceStatus)
			assert.Equal(t, models.ProgressTerminated, s.Progress)
		}
	}
	assert.Equal(t, []string{created.ID}, instances.cancelledCalls)
	assert.Equal(t, models.ActivityBookingCancelled, activities.activities[len(activities.activities)-1].ActionType)
}

func TestCancelBookingNotFound(t *testing.T) {
	now := date(2024, time.February, 1)
	svc, _ := newTestService(&fakeBookingRepo{}, &fakeInstanceRepo{}, now)

	_, err := svc.CancelBooking("user-1", "missing")
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestCancelServiceDemotesConfirmedBooking(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	instances := &fakeInstanceRepo{}
	svc, _ := newTestService(repo, instances, now)

	input := validInput()
	input.Bookings[0].Services = append(input.Bookings[0].Services, CreateServiceInput{
		Service:     models.ServiceGrooming,
		PackageName: "Full Groom",
		ServiceDate: timePtr(date(2024, time.March, 15)),
		Notes:       "Short trim please",
	})
	created, err := svc.Create("user-1", input)
	require.NoError(t, err)

	// Operator confirmed the booking out of band.
	repo.bookings[0].Status = models.BookingConfirmed

	updated, err := svc.CancelService("user-1", created.ID, created.Bookings[0].ID, 1)
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, updated.Status)
	assert.Equal(t, models.ServiceCancelled, updated.Bookings[0].Services[1].ServiceStatus)
	// The remaining service is untouched.
	assert.Equal(t, models.ServiceScheduled, updated.Bookings[0].Services[0].ServiceStatus)
	assert.Equal(t, 1, instances.cancelledEntries)
}

func TestCancelServiceUnknownTarget(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	svc, _ := newTestService(repo, &fakeInstanceRepo{}, now)

	created, err := svc.Create("user-1", validInput())
	require.NoError(t, err)

	_, err = svc.CancelService("user-1", created.ID, "no-such-dog", 0)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.CancelService("user-1", created.ID, created.Bookings[0].ID, 7)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRescheduleServiceFreezesEntry(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	instances := &fakeInstanceRepo{}
	svc, activities := newTestService(repo, instances, now)

	created, err := svc.Create("user-1", validInput())
	require.NoError(t, err)

	newStart := date(2024, time.June, 1)
	updated, err := svc.RescheduleService("user-1", created.ID, created.Bookings[0].ID, 0,
		ServiceUpdate{StartDate: &newStart})
	require.NoError(t, err)

	entry := updated.Bookings[0].Services[0]
	assert.Equal(t, newStart, *entry.StartDate)
	assert.Equal(t, models.ServiceRescheduled, entry.ServiceStatus)
	assert.Equal(t, models.ProgressAwaitingArrival, entry.Progress)
	assert.Equal(t, 1, instances.rescheduled)
	assert.Equal(t, models.ActivityServiceRescheduled, activities.activities[len(activities.activities)-1].ActionType)
}

func TestRescheduleBookingTargetsByDogID(t *testing.T) {
	now := date(2024, time.February, 1)
	repo := &fakeBookingRepo{}
	svc, _ := newTestService(repo, &fakeInstanceRepo{}, now)

	created, err := svc.Create("user-1", validInput())
	require.NoError(t, err)

	newStart := date(2024, time.July, 1)
	updated, err := svc.RescheduleBooking("user-1", created.ID, []ServiceUpdate{{
		DogID:        "dog-1",
		ServiceIndex: 0,
		StartDate:    &newStart,
	}})
	require.NoError(t, err)

	entry := updated.Bookings[0].Services[0]
	assert.Equal(t, newStart, *entry.StartDate)
	assert.Equal(t, models.ServiceRescheduled, entry.ServiceStatus)
}
