package dogRepo

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

// ErrDogNotFound is returned when no dog matches the query.
var ErrDogNotFound = errors.New("dog not found")

// DogRepository defines persistence operations for dogs.
type DogRepository interface {
	Create(dog *models.Dog) error
	Update(dog *models.Dog) error
	GetByIDForOwner(id, ownerID string) (*models.Dog, error)
	GetByID(id string) (*models.Dog, error)
	ListByOwner(ownerID string) ([]models.Dog, error)
	CountByOwner(ownerID string) (int64, error)
	CountAll() (int64, error)
	DistinctOwnerIDs() ([]string, error)
}

// MongoDogRepo implements DogRepository using MongoDB.
type MongoDogRepo struct {
	coll *mongo.Collection
}

// NewMongoDogRepo constructs a new instance of MongoDogRepo.
func NewMongoDogRepo() DogRepository {
	repo := &MongoDogRepo{
		coll: database.DB().Collection("dogs"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("WARNING: failed to ensure dog indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (repo *MongoDogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "breed", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new dog document.
func (repo *MongoDogRepo) Create(dog *models.Dog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, dog); err != nil {
		return fmt.Errorf("error creating dog: %w", err)
	}
	return nil
}

// Update replaces an existing dog document.
func (repo *MongoDogRepo) Update(dog *models.Dog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": dog.ID}, bson.M{"$set": dog})
	if err != nil {
		return fmt.Errorf("error updating dog %s: %w", dog.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrDogNotFound
	}
	return nil
}

// GetByIDForOwner retrieves a dog by ID, scoped to the owning user.
func (repo *MongoDogRepo) GetByIDForOwner(id, ownerID string) (*models.Dog, error) {
	return repo.get(bson.M{"id": id, "owner_id": ownerID})
}

// GetByID retrieves a dog by ID.
func (repo *MongoDogRepo) GetByID(id string) (*models.Dog, error) {
	return repo.get(bson.M{"id": id})
}

func (repo *MongoDogRepo) get(filter bson.M) (*models.Dog, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var dog models.Dog
	if err := repo.coll.FindOne(ctx, filter).Decode(&dog); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDogNotFound
		}
		return nil, fmt.Errorf("error fetching dog: %w", err)
	}
	return &dog, nil
}

// ListByOwner returns the owner's dogs, most recent first.
func (repo *MongoDogRepo) ListByOwner(ownerID string) ([]models.Dog, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing dogs: %w", err)
	}
	defer cursor.Close(ctx)

	var dogs []models.Dog
	if err := cursor.All(ctx, &dogs); err != nil {
		return nil, fmt.Errorf("error decoding dogs: %w", err)
	}
	return dogs, nil
}

// CountByOwner counts the owner's dogs.
func (repo *MongoDogRepo) CountByOwner(ownerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("error counting dogs: %w", err)
	}
	return count, nil
}

// CountAll counts every dog on record.
func (repo *MongoDogRepo) CountAll() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting dogs: %w", err)
	}
	return count, nil
}

// DistinctOwnerIDs returns the distinct owner ids across all dogs.
func (repo *MongoDogRepo) DistinctOwnerIDs() ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	values, err := repo.coll.Distinct(ctx, "owner_id", bson.M{"owner_id": bson.M{"$ne": ""}})
	if err != nil {
		return nil, fmt.Errorf("error fetching distinct owners: %w", err)
	}
	owners := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			owners = append(owners, s)
		}
	}
	return owners, nil
}
