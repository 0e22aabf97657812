package handlers

import (
	"net/http"
	"time"

	"github.com/KasenaM/kisite-canines/services/analytics"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the dashboard rollup endpoints.
type AnalyticsHandler struct {
	Service analytics.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(svc analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: svc}
}

// UserAnalytics handles GET /api/analytics.
func (h *AnalyticsHandler) UserAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.Service.UserAnalytics(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UserAnalyticsByDate handles GET /api/analytics/range?start=...&end=...
// with dates in YYYY-MM-DD form.
func (h *AnalyticsHandler) UserAnalyticsByDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must not be before start date"})
		return
	}

	result, err := h.Service.UserAnalyticsByDate(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminAnalytics handles GET /api/admin/analytics.
func (h *AnalyticsHandler) AdminAnalytics(c *gin.Context) {
	result, err := h.Service.AdminAnalytics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
