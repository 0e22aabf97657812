package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("WARNING: failed to ensure booking indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new booking document. A duplicate reference code surfaces
// as a duplicate-key error; callers regenerate the code and retry.
func (repo *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReferenceCode
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves a booking by its ID, scoped to the owning user.
func (repo *MongoBookingRepo) GetByIDForUser(id, userID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id, "user_id": userID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// ListByUser returns all bookings owned by the user, most recent first.
func (repo *MongoBookingRepo) ListByUser(userID string) ([]models.Booking, error) {
	return repo.list(bson.M{"user_id": userID})
}

// ListActiveByDog returns all non-cancelled bookings referencing the dog.
func (repo *MongoBookingRepo) ListActiveByDog(dogID string) ([]models.Booking, error) {
	return repo.list(bson.M{
		"bookings.dog_id": dogID,
		"status":          bson.M{"$ne": models.BookingCancelled},
	})
}

// ListUnpaidActiveByUser returns the user's unpaid, non-cancelled bookings.
func (repo *MongoBookingRepo) ListUnpaidActiveByUser(userID string) ([]models.Booking, error) {
	return repo.list(bson.M{
		"user_id":        userID,
		"payment_status": models.PaymentUnpaid,
		"status":         bson.M{"$ne": models.BookingCancelled},
	})
}

func (repo *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// Update replaces an existing booking document.
func (repo *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	update := bson.M{"$set": booking}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}
