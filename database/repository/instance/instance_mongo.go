package instanceRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KasenaM/kisite-canines/database"
	"github.com/KasenaM/kisite-canines/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInstanceNotFound is returned when no service instance matches the query.
var ErrInstanceNotFound = errors.New("service instance not found")

// MongoInstanceRepo implements InstanceRepository using MongoDB.
type MongoInstanceRepo struct {
	coll *mongo.Collection
}

// NewMongoInstanceRepo constructs a new instance of MongoInstanceRepo.
func NewMongoInstanceRepo() InstanceRepository {
	repo := &MongoInstanceRepo{
		coll: database.DB().Collection("serviceinstances"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("WARNING: failed to ensure service instance indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// InsertMany fans out the projection records created alongside a booking.
func (repo *MongoInstanceRepo) InsertMany(instances []models.ServiceInstance) error {
	if len(instances) == 0 {
		return nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(instances))
	for i := range instances {
		docs = append(docs, instances[i])
	}
	if _, err := repo.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error inserting service instances: %w", err)
	}
	return nil
}

// GetByID retrieves a service instance by its ID.
func (repo *MongoInstanceRepo) GetByID(id string) (*models.ServiceInstance, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var instance models.ServiceInstance
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&instance); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("error fetching service instance %s: %w", id, err)
	}
	return &instance, nil
}

// ListAll returns every service instance, most recent first.
func (repo *MongoInstanceRepo) ListAll() ([]models.ServiceInstance, error) {
	return repo.list(bson.M{})
}

// ListByUser returns the user's service instances, most recent first.
func (repo *MongoInstanceRepo) ListByUser(userID string) ([]models.ServiceInstance, error) {
	return repo.list(bson.M{"user_id": userID})
}

// ListByDog returns the dog's service instances, most recent first.
func (repo *MongoInstanceRepo) ListByDog(dogID string) ([]models.ServiceInstance, error) {
	return repo.list(bson.M{"dog_id": dogID})
}

// ListByService returns all instances of one service type, most recent first.
func (repo *MongoInstanceRepo) ListByService(service models.ServiceType) ([]models.ServiceInstance, error) {
	return repo.list(bson.M{"service_name": service})
}

func (repo *MongoInstanceRepo) list(filter bson.M) ([]models.ServiceInstance, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing service instances: %w", err)
	}
	defer cursor.Close(ctx)

	var instances []models.ServiceInstance
	if err := cursor.All(ctx, &instances); err != nil {
		return nil, fmt.Errorf("error decoding service instances: %w", err)
	}
	return instances, nil
}

// MarkCancelled mirrors a single-service cancellation into the projection.
func (repo *MongoInstanceRepo) MarkCancelled(bookingID, dogID string, service models.ServiceType, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID, "dog_id": dogID, "service_name": service}
	update := bson.M{"$set": bson.M{
		"service_status": models.ServiceCancelled,
		"progress":       models.ProgressTerminated,
		"cancelled_at":   at,
		"updated_at":     at,
	}}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error cancelling service instance: %w", err)
	}
	return nil
}

// Reschedule mirrors new dates and the Rescheduled freeze into the projection.
func (repo *MongoInstanceRepo) Reschedule(bookingID, dogID string, service models.ServiceType, serviceDate, startDate, endDate *time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"service_status": models.ServiceRescheduled,
		"progress":       models.ProgressAwaitingArrival,
		"updated_at":     time.Now(),
	}
	if serviceDate != nil {
		set["service_date"] = serviceDate
	}
	if startDate != nil {
		set["start_date"] = startDate
	}
	if endDate != nil {
		set["end_date"] = endDate
	}

	filter := bson.M{"booking_id": bookingID, "dog_id": dogID, "service_name": service}
	if _, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("error rescheduling service instance: %w", err)
	}
	return nil
}

// CancelAllForBooking mirrors a full-booking cancellation into the projection.
func (repo *MongoInstanceRepo) CancelAllForBooking(bookingID string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID}
	update := bson.M{"$set": bson.M{
		"service_status": models.ServiceCancelled,
		"progress":       models.ProgressTerminated,
		"cancelled_at":   at,
		"updated_at":     at,
	}}
	if _, err := repo.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("error cancelling service instances for booking %s: %w", bookingID, err)
	}
	return nil
}
