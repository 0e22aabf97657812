package paymentRepo

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

// ErrDuplicateReferenceCode is returned when an insert collides with the
// unique payment reference-code index.
var ErrDuplicateReferenceCode = errors.New("duplicate payment reference code")

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	ListByUser(userID string) ([]models.Payment, error)
	ListAll() ([]models.Payment, error)
	ListSuccessfulByUser(userID string) ([]models.Payment, error)
	ListSuccessful() ([]models.Payment, error)
	ListSuccessfulByUserBetween(userID string, start, end time.Time) ([]models.Payment, error)
}

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a new instance of MongoPaymentRepo.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &MongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("WARNING: failed to ensure payment indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (repo *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reference_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment document.
func (repo *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReferenceCode
		}
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

// ListByUser returns the user's payments, most recent first.
func (repo *MongoPaymentRepo) ListByUser(userID string) ([]models.Payment, error) {
	return repo.list(bson.M{"user_id": userID})
}

// ListAll returns every payment, most recent first.
func (repo *MongoPaymentRepo) ListAll() ([]models.Payment, error) {
	return repo.list(bson.M{})
}

// ListSuccessfulByUser returns the user's successful payments.
func (repo *MongoPaymentRepo) ListSuccessfulByUser(userID string) ([]models.Payment, error) {
	return repo.list(bson.M{"user_id": userID, "status": models.PaymentStateSuccess})
}

// ListSuccessful returns all successful payments.
func (repo *MongoPaymentRepo) ListSuccessful() ([]models.Payment, error) {
	return repo.list(bson.M{"status": models.PaymentStateSuccess})
}

// ListSuccessfulByUserBetween returns the user's successful payments created
// within [start, end].
func (repo *MongoPaymentRepo) ListSuccessfulByUserBetween(userID string, start, end time.Time) ([]models.Payment, error) {
	return repo.list(bson.M{
		"user_id":    userID,
		"status":     models.PaymentStateSuccess,
		"created_at": bson.M{"$gte": start, "$lte": end},
	})
}

func (repo *MongoPaymentRepo) list(filter bson.M) ([]models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("error decoding payments: %w", err)
	}
	return payments, nil
}
