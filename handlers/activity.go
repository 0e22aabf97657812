package handlers

import (
	"net/http"

	"github.com/KasenaM/kisite-canines/services/activity"

	"github.com/gin-gonic/gin"
)

// ActivityHandler exposes the audit trail endpoints.
type ActivityHandler struct {
	Service activity.ActivityService
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(svc activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

// RecentActivities handles GET /api/activities.
func (h *ActivityHandler) RecentActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activities, err := h.Service.RecentForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// AllRecentActivities handles GET /api/admin/activities.
func (h *ActivityHandler) AllRecentActivities(c *gin.Context) {
	activities, err := h.Service.RecentAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
