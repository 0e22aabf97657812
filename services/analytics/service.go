package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	activityRepo "github.com/KasenaM/kisite-canines/database/repository/activity"
	bookingRepo "github.com/KasenaM/kisite-canines/database/repository/booking"
	dogRepo "github.com/KasenaM/kisite-canines/database/repository/dog"
	instanceRepo "github.com/KasenaM/kisite-canines/database/repository/instance"
	paymentRepo "github.com/KasenaM/kisite-canines/database/repository/payment"
	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Loyalty tier thresholds in currency units.
const (
	silverThreshold = 20000
	goldThreshold   = 50000
)

// DogServiceCount is one entry of the "dogs with most services" rollup.
type DogServiceCount struct {
	DogID   string `json:"dogId"`
	DogName string `json:"dogName"`
	Breed   string `json:"breed"`
	Count   int    `json:"count"`
}

// UserAnalytics is the client dashboard rollup for one user.
type UserAnalytics struct {
	TotalDogs            int64             `json:"totalDogs"`
	TotalServices        int               `json:"totalServices"`
	CancelledServices    int               `json:"cancelledServices"`
	UpcomingAppointments int               `json:"upcomingAppointments"`
	TotalSpent           int64             `json:"totalSpent"`
	MostUsedService      string            `json:"mostUsedService,omitempty"`
	CompletionRate       string            `json:"completionRate"`
	CancellationRate     string            `json:"cancellationRate"`
	AvgSpendPerBooking   string            `json:"avgSpendPerBooking"`
	UpcomingRevenue      int64             `json:"upcomingRevenue"`
	DogsMostServices     []DogServiceCount `json:"dogsMostServices"`
	LoyaltyLevel         string            `json:"loyaltyLevel"`
	RecentActivities     []models.Activity `json:"recentActivities"`
}

// AdminAnalytics is the admin dashboard rollup across all users.
type AdminAnalytics struct {
	TotalUsers           int               `json:"totalUsers"`
	TotalDogs            int64             `json:"totalDogs"`
	TotalServices        int               `json:"totalServices"`
	CancelledServices    int               `json:"cancelledServices"`
	UpcomingAppointments int               `json:"upcomingAppointments"`
	TotalSpent           int64             `json:"totalSpent"`
	MostUsedService      string            `json:"mostUsedService,omitempty"`
	RecentActivities     []models.Activity `json:"recentActivities"`
}

// DateRangeAnalytics is the rollup for a user within a date window.
type DateRangeAnalytics struct {
	TotalServices        int               `json:"totalServices"`
	CancelledServices    int               `json:"cancelledServices"`
	UpcomingAppointments int               `json:"upcomingAppointments"`
	TotalSpent           int64             `json:"totalSpent"`
	Activities           []models.Activity `json:"activities"`
}

// AnalyticsService computes read-only rollups over persisted state.
type AnalyticsService interface {
	UserAnalytics(userID string) (*UserAnalytics, error)
	AdminAnalytics() (*AdminAnalytics, error)
	UserAnalyticsByDate(userID string, start, end time.Time) (*DateRangeAnalytics, error)
}

// DefaultAnalyticsService is the production implementation. Cache is
// optional; when set, per-user rollups are cached for CacheTTL.
type DefaultAnalyticsService struct {
	Bookings   bookingRepo.BookingRepository
	Instances  instanceRepo.InstanceRepository
	Payments   paymentRepo.PaymentRepository
	Dogs       dogRepo.DogRepository
	Activities activityRepo.ActivityRepository

	Cache    *redis.Client
	CacheTTL time.Duration

	// Now is injectable for deterministic tests.
	Now func() time.Time
}

func (s *DefaultAnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// UserAnalytics assembles the client dashboard rollup for one user.
func (s *DefaultAnalyticsService) UserAnalytics(userID string) (*UserAnalytics, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if cached, err := s.cachedUserAnalytics(userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	totalDogs, err := s.Dogs.CountByOwner(userID)
	if err != nil {
		return nil, err
	}
	instances, err := s.Instances.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListSuccessfulByUser(userID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.Bookings.ListUnpaidActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.Activities.RecentByUser(userID, 5)
	if err != nil {
		return nil, err
	}

	now := s.now()
	totalSpent := sumPayments(payments)

	result := &UserAnalytics{
		TotalDogs:            totalDogs,
		TotalServices:        len(instances),
		CancelledServices:    countByStatus(instances, models.ServiceCancelled),
		UpcomingAppointments: countUpcoming(instances, now),
		TotalSpent:           totalSpent,
		MostUsedService:      mostUsedService(instances),
		CompletionRate:       rate(countByStatus(instances, models.ServiceDone), len(instances)),
		CancellationRate:     rate(countByStatus(instances, models.ServiceCancelled), len(instances)),
		AvgSpendPerBooking:   avgBookingAmount(bookings),
		UpcomingRevenue:      sumBookingAmounts(unpaid),
		DogsMostServices:     s.topDogs(instances, 5),
		LoyaltyLevel:         loyaltyLevel(totalSpent),
		RecentActivities:     recent,
	}

	if s.Cache != nil {
		if err := s.storeUserAnalytics(userID, result); err != nil {
			logger.Warn("failed to cache analytics snapshot",
				zap.String("userId", userID), zap.Error(err))
		}
	}
	return result, nil
}

// AdminAnalytics assembles the admin dashboard rollup across all users.
func (s *DefaultAnalyticsService) AdminAnalytics() (*AdminAnalytics, error) {
	owners, err := s.Dogs.DistinctOwnerIDs()
	if err != nil {
		return nil, err
	}
	totalDogs, err := s.Dogs.CountAll()
	if err != nil {
		return nil, err
	}
	instances, err := s.Instances.ListAll()
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListSuccessful()
	if err != nil {
		return nil, err
	}
	recent, err := s.Activities.Recent(10)
	if err != nil {
		return nil, err
	}

	return &AdminAnalytics{
		TotalUsers:           len(owners),
		TotalDogs:            totalDogs,
		TotalServices:        len(instances),
		CancelledServices:    countByStatus(instances, models.ServiceCancelled),
		UpcomingAppointments: countUpcoming(instances, s.now()),
		TotalSpent:           sumPayments(payments),
		MostUsedService:      mostUsedService(instances),
		RecentActivities:     recent,
	}, nil
}

// UserAnalyticsByDate assembles the rollup for a user within [start, end].
// The end date is widened to the end of its day.
func (s *DefaultAnalyticsService) UserAnalyticsByDate(userID string, start, end time.Time) (*DateRangeAnalytics, error) {
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Millisecond-time.Nanosecond), end.Location())

	instances, err := s.Instances.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListSuccessfulByUserBetween(userID, start, end)
	if err != nil {
		return nil, err
	}
	activities, err := s.Activities.ListByUserBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	var inRange []models.ServiceInstance
	for _, inst := range instances {
		if !inst.CreatedAt.Before(start) && !inst.CreatedAt.After(end) {
			inRange = append(inRange, inst)
		}
	}

	return &DateRangeAnalytics{
		TotalServices:        len(inRange),
		CancelledServices:    countByStatus(inRange, models.ServiceCancelled),
		UpcomingAppointments: countUpcoming(instances, s.now()),
		TotalSpent:           sumPayments(payments),
		Activities:           activities,
	}, nil
}

func (s *DefaultAnalyticsService) cachedUserAnalytics(userID string) (*UserAnalytics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.Cache.Get(ctx, utils.AnalyticsCachePrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	var result UserAnalytics
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *DefaultAnalyticsService) storeUserAnalytics(userID string, result *UserAnalytics) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.Cache.Set(ctx, utils.AnalyticsCachePrefix+userID, data, ttl).Err()
}

func countByStatus(instances []models.ServiceInstance, status models.ServiceStatus) int {
	count := 0
	for _, inst := range instances {
		if inst.ServiceStatus == status {
			count++
		}
	}
	return count
}

// countUpcoming counts scheduled or rescheduled instances whose effective
// date (serviceDate for grooming, startDate for stays) has not yet passed.
func countUpcoming(instances []models.ServiceInstance, now time.Time) int {
	count := 0
	for _, inst := range instances {
		if inst.ServiceStatus != models.ServiceScheduled && inst.ServiceStatus != models.ServiceRescheduled {
			continue
		}
		date := inst.ServiceDate
		if date == nil {
			date = inst.StartDate
		}
		if date != nil && !date.Before(now) {
			count++
		}
	}
	return count
}

func sumPayments(payments []models.Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

func sumBookingAmounts(bookings []models.Booking) int64 {
	var total int64
	for _, b := range bookings {
		total += b.TotalAmount
	}
	return total
}

// rate formats numerator/denominator as a percentage with two decimals.
// A zero denominator yields "0.00", never a division error.
func rate(numerator, denominator int) string {
	if denominator == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(numerator)/float64(denominator)*100)
}

func avgBookingAmount(bookings []models.Booking) string {
	if len(bookings) == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(sumBookingAmounts(bookings))/float64(len(bookings)))
}

// mostUsedService returns the service type with the most instances. Ties are
// broken lexicographically so the result is deterministic.
func mostUsedService(instances []models.ServiceInstance) string {
	counts := make(map[models.ServiceType]int)
	for _, inst := range instances {
		counts[inst.ServiceName]++
	}

	best := ""
	bestCount := 0
	for service, count := range counts {
		name := string(service)
		if count > bestCount || (count == bestCount && bestCount > 0 && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}

// topDogs returns the caller's dogs with the most service instances,
// count descending, dog id ascending on ties.
func (s *DefaultAnalyticsService) topDogs(instances []models.ServiceInstance, limit int) []DogServiceCount {
	counts := make(map[string]int)
	for _, inst := range instances {
		counts[inst.DogID]++
	}

	entries := make([]DogServiceCount, 0, len(counts))
	for dogID, count := range counts {
		entries = append(entries, DogServiceCount{DogID: dogID, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].DogID < entries[j].DogID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	for i := range entries {
		if dog, err := s.Dogs.GetByID(entries[i].DogID); err == nil {
			entries[i].DogName = dog.Name
			entries[i].Breed = dog.Breed
		}
	}
	return entries
}

func loyaltyLevel(totalSpent int64) string {
	switch {
	case totalSpent > goldThreshold:
		return "Gold"
	case totalSpent > silverThreshold:
		return "Silver"
	default:
		return "Bronze"
	}
}
