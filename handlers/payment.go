package handlers

import (
	"net/http"

	"github.com/KasenaM/kisite-canines/services/payment"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes the payment endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreatePayment handles POST /api/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		BookingID     string `json:"bookingId"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.BookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingId is required"})
		return
	}

	created, err := h.Service.CreatePayment(userID, input.BookingID, input.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMyPayments handles GET /api/payments.
func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payments, err := h.Service.ListMine(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// ListAllPayments handles GET /api/admin/payments.
func (h *PaymentHandler) ListAllPayments(c *gin.Context) {
	payments, err := h.Service.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
