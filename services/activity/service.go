package activity

import (
	"time"

	activityRepo "github.com/KasenaM/kisite-canines/database/repository/activity"
	"github.com/KasenaM/kisite-canines/models"

	"github.com/google/uuid"
)

const (
	userFeedLimit  = 5
	adminFeedLimit = 10
)

// ActivityService exposes the audit trail of booking actions.
type ActivityService interface {
	Log(userID string, actionType models.ActivityType, description, relatedID string) error
	RecentForUser(userID string) ([]models.Activity, error)
	RecentAll() ([]models.Activity, error)
}

// DefaultActivityService is the production implementation.
type DefaultActivityService struct {
	Repo activityRepo.ActivityRepository
	Now  func() time.Time
}

func (s *DefaultActivityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Log appends an audit record for a user action.
func (s *DefaultActivityService) Log(userID string, actionType models.ActivityType, description, relatedID string) error {
	return s.Repo.Create(&models.Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		ActionType:  actionType,
		Description: description,
		RelatedID:   relatedID,
		CreatedAt:   s.now(),
	})
}

// RecentForUser returns the user's latest audit records.
func (s *DefaultActivityService) RecentForUser(userID string) ([]models.Activity, error) {
	return s.Repo.RecentByUser(userID, userFeedLimit)
}

// RecentAll returns the latest audit records across all users.
func (s *DefaultActivityService) RecentAll() ([]models.Activity, error) {
	return s.Repo.Recent(adminFeedLimit)
}
