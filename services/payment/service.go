package payment

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	bookingRepo "github.com/KasenaM/kisite-canines/database/repository/booking"
	paymentRepo "github.com/KasenaM/kisite-canines/database/repository/payment"
	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/services/booking"
	"github.com/KasenaM/kisite-canines/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// ErrAlreadyPaid is returned when a booking has already been settled.
var ErrAlreadyPaid = errors.New("booking is already paid")

const maxReferenceCodeAttempts = 5

// PaymentService records payments against bookings. The gateway side is a
// stub: when a Stripe key is configured a PaymentIntent is created for the
// charge, otherwise the payment is recorded directly as successful.
type PaymentService interface {
	CreatePayment(userID, bookingID, method string) (*models.Payment, error)
	ListMine(userID string) ([]models.Payment, error)
	ListAll() ([]models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo        paymentRepo.PaymentRepository
	BookingRepo bookingRepo.BookingRepository

	// StripeEnabled gates the PaymentIntent call; stripe.Key is set in main.
	StripeEnabled bool

	Rand *rand.Rand
	Now  func() time.Time
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPaymentService) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.Rand
}

// generateReferenceCode produces a payment reference in the form
// "PAY-<year>-<6 digits>"; uniqueness is enforced by the unique index.
func generateReferenceCode(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("PAY-%d-%06d", now.Year(), 100000+rng.Intn(900000))
}

// CreatePayment settles a booking in full and marks it Paid.
func (s *DefaultPaymentService) CreatePayment(userID, bookingID, method string) (*models.Payment, error) {
	logger := utils.GetLogger()

	b, err := s.BookingRepo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	now := s.now()
	newPayment := &models.Payment{
		ID:            uuid.New().String(),
		BookingID:     b.ID,
		UserID:        userID,
		Amount:        b.TotalAmount,
		Status:        models.PaymentStateSuccess,
		PaymentMethod: method,
		PaidAt:        &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if s.StripeEnabled {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(b.TotalAmount * 100),
			Currency: stripe.String(string(stripe.CurrencyKES)),
			Metadata: map[string]string{"booking_id": b.ID},
		}
		intent, err := paymentintent.New(params)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment intent: %w", err)
		}
		newPayment.Notes = "stripe:" + intent.ID
	}

	for attempt := 0; attempt < maxReferenceCodeAttempts; attempt++ {
		newPayment.ReferenceCode = generateReferenceCode(now, s.rng())
		err = s.Repo.Create(newPayment)
		if err != paymentRepo.ErrDuplicateReferenceCode {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	// Marking the booking Paid re-derives its status; a fully delivered
	// booking completes here.
	b.PaymentStatus = models.PaymentPaid
	booking.DeriveState(b, now)
	b.UpdatedAt = now
	if err := s.BookingRepo.Update(b); err != nil {
		logger.Error("failed to mark booking paid",
			zap.String("bookingId", b.ID), zap.Error(err))
		return nil, err
	}

	return newPayment, nil
}

// ListMine returns the caller's payments, most recent first.
func (s *DefaultPaymentService) ListMine(userID string) ([]models.Payment, error) {
	return s.Repo.ListByUser(userID)
}

// ListAll returns every payment, most recent first.
func (s *DefaultPaymentService) ListAll() ([]models.Payment, error) {
	return s.Repo.ListAll()
}
