package analytics

import (
	"testing"
	"time"

	dogRepo "github.com/KasenaM/kisite-canines/database/repository/dog"
	"github.com/KasenaM/kisite-canines/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookings struct {
	byUser []models.Booking
	unpaid []models.Booking
}

func (f *fakeBookings) Create(*models.Booking) error { return nil }
func (f *fakeBookings) GetByIDForUser(string, string) (*models.Booking, error) {
	return nil, nil
}
func (f *fakeBookings) ListByUser(string) ([]models.Booking, error) { return f.byUser, nil }
func (f *fakeBookings) ListActiveByDog(string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookings) ListUnpaidActiveByUser(string) ([]models.Booking, error) {
	return f.unpaid, nil
}
func (f *fakeBookings) Update(*models.Booking) error { return nil }

type fakeInstances struct {
	byUser []models.ServiceInstance
	all    []models.ServiceInstance
}

func (f *fakeInstances) InsertMany([]models.ServiceInstance) error { return nil }
func (f *fakeInstances) GetByID(string) (*models.ServiceInstance, error) {
	return nil, nil
}
func (f *fakeInstances) ListAll() ([]models.ServiceInstance, error) { return f.all, nil }
func (f *fakeInstances) ListByUser(string) ([]models.ServiceInstance, error) {
	return f.byUser, nil
}
func (f *fakeInstances) ListByDog(string) ([]models.ServiceInstance, error) { return nil, nil }
func (f *fakeInstances) ListByService(models.ServiceType) ([]models.ServiceInstance, error) {
	return nil, nil
}
func (f *fakeInstances) MarkCancelled(string, string, models.ServiceType, time.Time) error {
	return nil
}
func (f *fakeInstances) Reschedule(string, string, models.ServiceType, *time.Time, *time.Time, *time.Time) error {
	return nil
}
func (f *fakeInstances) CancelAllForBooking(string, time.Time) error { return nil }

type fakePayments struct {
	successful []models.Payment
}

func (f *fakePayments) Create(*models.Payment) error { return nil }
func (f *fakePayments) ListByUser(string) ([]models.Payment, error) { return nil, nil }
func (f *fakePayments) ListAll() ([]models.Payment, error) { return nil, nil }
func (f *fakePayments) ListSuccessfulByUser(string) ([]models.Payment, error) {
	return f.successful, nil
}
func (f *fakePayments) ListSuccessful() ([]models.Payment, error) { return f.successful, nil }
func (f *fakePayments) ListSuccessfulByUserBetween(string, time.Time, time.Time) ([]models.Payment, error) {
	return f.successful, nil
}

type fakeDogs struct {
	dogs   map[string]models.Dog
	owners []string
}

func (f *fakeDogs) Create(*models.Dog) error { return nil }
func (f *fakeDogs) Update(*models.Dog) error { return nil }
func (f *fakeDogs) GetByIDForOwner(id, _ string) (*models.Dog, error) {
	return f.GetByID(id)
}
func (f *fakeDogs) GetByID(id string) (*models.Dog, error) {
	if d, ok := f.dogs[id]; ok {
		return &d, nil
	}
	return nil, dogRepo.ErrDogNotFound
}
func (f *fakeDogs) ListByOwner(string) ([]models.Dog, error) { return nil, nil }
func (f *fakeDogs) CountByOwner(string) (int64, error) { return int64(len(f.dogs)), nil }
func (f *fakeDogs) CountAll() (int64, error) { return int64(len(f.dogs)), nil }
func (f *fakeDogs) DistinctOwnerIDs() ([]string, error) { return f.owners, nil }

type fakeActivities struct {
	activities []models.Activity
}

func (f *fakeActivities) Create(*models.Activity) error { return nil }
func (f *fakeActivities) RecentByUser(string, int64) ([]models.Activity, error) {
	return f.activities, nil
}
func (f *fakeActivities) Recent(int64) ([]models.Activity, error) { return f.activities, nil }
func (f *fakeActivities) ListByUserBetween(string, time.Time, time.Time) ([]models.Activity, error) {
	return f.activities, nil
}

func inst(service models.ServiceType, status models.ServiceStatus, dogID string, date *time.Time) models.ServiceInstance {
	return models.ServiceInstance{
		DogID:         dogID,
		ServiceName:   service,
		ServiceStatus: status,
		ServiceDate:   date,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func newService(instances []models.ServiceInstance, payments []models.Payment, now time.Time) *DefaultAnalyticsService {
	return &DefaultAnalyticsService{
		Bookings:   &fakeBookings{},
		Instances:  &fakeInstances{byUser: instances, all: instances},
		Payments:   &fakePayments{successful: payments},
		Dogs:       &fakeDogs{dogs: map[string]models.Dog{}},
		Activities: &fakeActivities{},
		Now:        func() time.Time { return now },
	}
}

func TestRateFormatting(t *testing.T) {
	assert.Equal(t, "0.00", rate(0, 0))
	assert.Equal(t, "0.00", rate(3, 0))
	assert.Equal(t, "50.00", rate(1, 2))
	assert.Equal(t, "33.33", rate(1, 3))
	assert.Equal(t, "100.00", rate(4, 4))
}

func TestLoyaltyLevels(t *testing.T) {
	assert.Equal(t, "Bronze", loyaltyLevel(0))
	assert.Equal(t, "Bronze", loyaltyLevel(20000))
	assert.Equal(t, "Silver", loyaltyLevel(20001))
	assert.Equal(t, "Silver", loyaltyLevel(50000))
	assert.Equal(t, "Gold", loyaltyLevel(50001))
}

func TestMostUsedServiceTieBreak(t *testing.T) {
	instances := []models.ServiceInstance{
		inst(models.ServiceGrooming, models.ServiceDone, "d1", nil),
		inst(models.ServiceBoarding, models.ServiceDone, "d1", nil),
	}
	// Equal counts resolve alphabetically.
	assert.Equal(t, "Boarding", mostUsedService(instances))

	instances = append(instances, inst(models.ServiceGrooming, models.ServiceScheduled, "d2", nil))
	assert.Equal(t, "Grooming", mostUsedService(instances))

	assert.Equal(t, "", mostUsedService(nil))
}

func TestCountUpcoming(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	instances := []models.ServiceInstance{
		inst(models.ServiceGrooming, models.ServiceScheduled, "d1", timePtr(future)),
		inst(models.ServiceGrooming, models.ServiceRescheduled, "d1", timePtr(future)),
		inst(models.ServiceGrooming, models.ServiceScheduled, "d1", timePtr(past)),
		inst(models.ServiceGrooming, models.ServiceCancelled, "d1", timePtr(future)),
		inst(models.ServiceGrooming, models.ServiceDone, "d1", timePtr(future)),
		// A stay counts through its start date when no service date is set.
		{ServiceName: models.ServiceBoarding, ServiceStatus: models.ServiceScheduled, StartDate: timePtr(future)},
		{ServiceName: models.ServiceBoarding, ServiceStatus: models.ServiceScheduled},
	}

	assert.Equal(t, 3, countUpcoming(instances, now))
}

func TestTopDogsOrderingAndLimit(t *testing.T) {
	svc := newService(nil, nil, time.Now())
	svc.Dogs = &fakeDogs{dogs: map[string]models.Dog{
		"a": {ID: "a", Name: "Simba", Breed: "Ridgeback"},
		"b": {ID: "b", Name: "Nala", Breed: "Beagle"},
		"c": {ID: "c", Name: "Rex", Breed: "GSD"},
	}}

	instances := []models.ServiceInstance{
		inst(models.ServiceGrooming, models.ServiceDone, "b", nil),
		inst(models.ServiceGrooming, models.ServiceDone, "b", nil),
		inst(models.ServiceGrooming, models.ServiceDone, "a", nil),
		inst(models.ServiceGrooming, models.ServiceDone, "c", nil),
	}

	top := svc.topDogs(instances, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].DogID)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, "Nala", top[0].DogName)
	// Tie between "a" and "c" resolves by dog id ascending.
	assert.Equal(t, "a", top[1].DogID)
}

func TestUserAnalyticsRollup(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)

	instances := []models.ServiceInstance{
		inst(models.ServiceGrooming, models.ServiceDone, "d1", nil),
		inst(models.ServiceGrooming, models.ServiceCancelled, "d1", nil),
		inst(models.ServiceBoarding, models.ServiceScheduled, "d2", timePtr(future)),
	}
	payments := []models.Payment{{Amount: 15000}, {Amount: 40000}}

	svc := newService(instances, payments, now)
	svc.Bookings = &fakeBookings{
		byUser: []models.Booking{{TotalAmount: 15000}, {TotalAmount: 40000}},
		unpaid: []models.Booking{{TotalAmount: 4500}},
	}

	result, err := svc.UserAnalytics("user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalServices)
	assert.Equal(t, 1, result.CancelledServices)
	assert.Equal(t, 1, result.UpcomingAppointments)
	assert.Equal(t, int64(55000), result.TotalSpent)
	assert.Equal(t, "Gold", result.LoyaltyLevel)
	assert.Equal(t, "33.33", result.CompletionRate)
	assert.Equal(t, "33.33", result.CancellationRate)
	assert.Equal(t, "27500.00", result.AvgSpendPerBooking)
	assert.Equal(t, int64(4500), result.UpcomingRevenue)
	assert.Equal(t, "Grooming", result.MostUsedService)
}

func TestUserAnalyticsEmptyState(t *testing.T) {
	svc := newService(nil, nil, time.Now())

	result, err := svc.UserAnalytics("user-1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalServices)
	assert.Equal(t, "0.00", result.CompletionRate)
	assert.Equal(t, "0.00", result.CancellationRate)
	assert.Equal(t, "0.00", result.AvgSpendPerBooking)
	assert.Equal(t, "Bronze", result.LoyaltyLevel)
	assert.Empty(t, result.DogsMostServices)
}

func TestAdminAnalyticsRollup(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	instances := []models.ServiceInstance{
		inst(models.ServiceTraining, models.ServiceDone, "d1", nil),
		inst(models.ServiceTraining, models.ServiceCancelled, "d2", nil),
	}
	svc := newService(instances, []models.Payment{{Amount: 9000}}, now)
	svc.Dogs = &fakeDogs{
		dogs:   map[string]models.Dog{"d1": {}, "d2": {}},
		owners: []string{"u1", "u2", "u3"},
	}

	result, err := svc.AdminAnalytics()
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalUsers)
	assert.Equal(t, int64(2), result.TotalDogs)
	assert.Equal(t, 2, result.TotalServices)
	assert.Equal(t, 1, result.CancelledServices)
	assert.Equal(t, int64(9000), result.TotalSpent)
}

func TestUserAnalyticsByDateFiltersInstances(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	instances := []models.ServiceInstance{
		{ServiceName: models.ServiceGrooming, ServiceStatus: models.ServiceDone,
			CreatedAt: time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)},
		{ServiceName: models.ServiceGrooming, ServiceStatus: models.ServiceCancelled,
			CreatedAt: time.Date(2024, time.June, 30, 23, 30, 0, 0, time.UTC)},
		{ServiceName: models.ServiceGrooming, ServiceStatus: models.ServiceDone,
			CreatedAt: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
	}

	svc := newService(instances, []models.Payment{{Amount: 3000}}, now)

	result, err := svc.UserAnalyticsByDate("user-1", start, end)
	require.NoError(t, err)

	// The end date is inclusive through end of day; the May instance is out.
	assert.Equal(t, 2, result.TotalServices)
	assert.Equal(t, 1, result.CancelledServices)
	assert.Equal(t, int64(3000), result.TotalSpent)
}
