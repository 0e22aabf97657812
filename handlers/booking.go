package handlers

import (
	"net/http"
	"strconv"

	"github.com/KasenaM/kisite-canines/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.Create(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.Service.ListMine(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking handles PATCH /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.Service.CancelBooking(userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RescheduleBooking handles PATCH /api/bookings/:id/reschedule.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		UpdatedServices []booking.ServiceUpdate `json:"updatedServices"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Service.RescheduleBooking(userID, c.Param("id"), input.UpdatedServices)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// serviceTarget parses the dog item id and service index from the path.
func serviceTarget(c *gin.Context) (dogItemID string, serviceIndex int, ok bool) {
	dogItemID = c.Param("dogItemId")
	idx, err := strconv.Atoi(c.Param("serviceIndex"))
	if err != nil || idx < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service index"})
		return "", 0, false
	}
	return dogItemID, idx, true
}

// CancelService handles PATCH /api/bookings/:id/dogs/:dogItemId/services/:serviceIndex/cancel.
func (h *BookingHandler) CancelService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dogItemID, serviceIndex, ok := serviceTarget(c)
	if !ok {
		return
	}

	updated, err := h.Service.CancelService(userID, c.Param("id"), dogItemID, serviceIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RescheduleService handles PATCH /api/bookings/:id/dogs/:dogItemId/services/:serviceIndex/reschedule.
func (h *BookingHandler) RescheduleService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dogItemID, serviceIndex, ok := serviceTarget(c)
	if !ok {
		return
	}

	var update booking.ServiceUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Service.RescheduleService(userID, c.Param("id"), dogItemID, serviceIndex, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
