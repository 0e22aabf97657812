package handlers

import (
	"errors"
	"net/http"

	bookingRepo "github.com/KasenaM/kisite-canines/database/repository/booking"
	dogRepo "github.com/KasenaM/kisite-canines/database/repository/dog"
	instanceRepo "github.com/KasenaM/kisite-canines/database/repository/instance"
	"github.com/KasenaM/kisite-canines/services/booking"
	"github.com/KasenaM/kisite-canines/services/payment"
	"github.com/KasenaM/kisite-canines/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return userID, true
}

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and returned as a generic 500 without internal detail.
func respondError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var conflictErr *booking.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflictErr.Error()})
	case errors.Is(err, payment.ErrAlreadyPaid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is already paid."})
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, booking.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
	case errors.Is(err, dogRepo.ErrDogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Dog not found"})
	case errors.Is(err, instanceRepo.ErrInstanceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Service instance not found"})
	default:
		utils.GetLogger().Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
