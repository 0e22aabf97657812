package activityRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/KasenaM/kisite-canines/database"
	"github.com/KasenaM/kisite-canines/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines persistence operations for audit records.
type ActivityRepository interface {
	Create(activity *models.Activity) error
	RecentByUser(userID string, limit int64) ([]models.Activity, error)
	Recent(limit int64) ([]models.Activity, error)
	ListByUserBetween(userID string, start, end time.Time) ([]models.Activity, error)
}

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo constructs a new instance of MongoActivityRepo.
func NewMongoActivityRepo() ActivityRepository {
	repo := &MongoActivityRepo{
		coll: database.DB().Collection("activities"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("WARNING: failed to ensure activity indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (repo *MongoActivityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new audit record.
func (repo *MongoActivityRepo) Create(activity *models.Activity) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("error creating activity: %w", err)
	}
	return nil
}

// RecentByUser returns the user's newest audit records.
func (repo *MongoActivityRepo) RecentByUser(userID string, limit int64) ([]models.Activity, error) {
	return repo.list(bson.M{"user_id": userID}, limit)
}

// Recent returns the newest audit records across all users.
func (repo *MongoActivityRepo) Recent(limit int64) ([]models.Activity, error) {
	return repo.list(bson.M{}, limit)
}

// ListByUserBetween returns the user's audit records created within [start, end].
func (repo *MongoActivityRepo) ListByUserBetween(userID string, start, end time.Time) ([]models.Activity, error) {
	return repo.list(bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}, 0)
}

func (repo *MongoActivityRepo) list(filter bson.M, limit int64) ([]models.Activity, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("error decoding activities: %w", err)
	}
	return activities, nil
}
