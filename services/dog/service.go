package dog

import (
	"strings"
	"time"

	dogRepo "github.com/KasenaM/kisite-canines/database/repository/dog"
	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/services/booking"

	"github.com/google/uuid"
)

// DogService manages a client's dog profiles.
type DogService interface {
	ListMine(ownerID string) ([]models.Dog, error)
	Create(ownerID string, in CreateDogInput) (*models.Dog, error)
	Update(ownerID, dogID string, in UpdateDogInput) (*models.Dog, error)
}

// CreateDogInput carries the fields of a new dog profile.
type CreateDogInput struct {
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Age    string `json:"age"`
	Gender string `json:"gender"`
	Image  string `json:"image"`
}

// UpdateDogInput carries a partial update; nil fields are left unchanged.
type UpdateDogInput struct {
	Name   *string `json:"name"`
	Breed  *string `json:"breed"`
	Age    *string `json:"age"`
	Gender *string `json:"gender"`
	Image  *string `json:"image"`
}

// DefaultDogService is the production implementation.
type DefaultDogService struct {
	Repo dogRepo.DogRepository
	Now  func() time.Time
}

func (s *DefaultDogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListMine returns the owner's dogs, most recent first.
func (s *DefaultDogService) ListMine(ownerID string) ([]models.Dog, error) {
	return s.Repo.ListByOwner(ownerID)
}

// Create registers a new dog profile for the owner.
func (s *DefaultDogService) Create(ownerID string, in CreateDogInput) (*models.Dog, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, booking.NewValidationError("Dog name is required.")
	}

	now := s.now()
	d := &models.Dog{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Source:    "client",
		Name:      strings.TrimSpace(in.Name),
		Breed:     strings.TrimSpace(in.Breed),
		Age:       strings.TrimSpace(in.Age),
		Gender:    strings.TrimSpace(in.Gender),
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update applies a partial edit to one of the owner's dogs.
func (s *DefaultDogService) Update(ownerID, dogID string, in UpdateDogInput) (*models.Dog, error) {
	d, err := s.Repo.GetByIDForOwner(dogID, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, booking.NewValidationError("Dog name cannot be empty.")
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		d.Age = strings.TrimSpace(*in.Age)
	}
	if in.Gender != nil {
		d.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.Image != nil {
		d.Image = *in.Image
	}

	d.UpdatedAt = s.now()
	if err := s.Repo.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}
