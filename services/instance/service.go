package instance

import (
	instanceRepo "github.com/KasenaM/kisite-canines/database/repository/instance"
	"github.com/KasenaM/kisite-canines/models"
)

// InstanceService exposes read-only queries over the service projection.
// Instances are mutated only through booking commands, never directly.
type InstanceService interface {
	GetByID(id string) (*models.ServiceInstance, error)
	ListAll() ([]models.ServiceInstance, error)
	ListByUser(userID string) ([]models.ServiceInstance, error)
	ListByDog(dogID string) ([]models.ServiceInstance, error)
	ListByService(service models.ServiceType) ([]models.ServiceInstance, error)
}

// DefaultInstanceService is the production implementation.
type DefaultInstanceService struct {
	Repo instanceRepo.InstanceRepository
}

func (s *DefaultInstanceService) GetByID(id string) (*models.ServiceInstance, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultInstanceService) ListAll() ([]models.ServiceInstance, error) {
	return s.Repo.ListAll()
}

func (s *DefaultInstanceService) ListByUser(userID string) ([]models.ServiceInstance, error) {
	return s.Repo.ListByUser(userID)
}

func (s *DefaultInstanceService) ListByDog(dogID string) ([]models.ServiceInstance, error) {
	return s.Repo.ListByDog(dogID)
}

func (s *DefaultInstanceService) ListByService(service models.ServiceType) ([]models.ServiceInstance, error) {
	return s.Repo.ListByService(service)
}
