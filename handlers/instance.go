package handlers

import (
	"net/http"

	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/services/instance"

	"github.com/gin-gonic/gin"
)

// InstanceHandler exposes the per-service work queue views.
type InstanceHandler struct {
	Service instance.InstanceService
}

// NewInstanceHandler constructs an InstanceHandler.
func NewInstanceHandler(svc instance.InstanceService) *InstanceHandler {
	return &InstanceHandler{Service: svc}
}

// ListMyInstances handles GET /api/service-instances.
func (h *InstanceHandler) ListMyInstances(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	instances, err := h.Service.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instances)
}

// GetInstance handles GET /api/service-instances/:id.
func (h *InstanceHandler) GetInstance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	inst, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if inst.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service instance not found"})
		return
	}
	c.JSON(http.StatusOK, inst)
}

// ListAllInstances handles GET /api/admin/service-instances. An optional
// "service" query filters by service type.
func (h *InstanceHandler) ListAllInstances(c *gin.Context) {
	if svcName := c.Query("service"); svcName != "" {
		svc := models.ServiceType(svcName)
		if !svc.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
			return
		}
		instances, err := h.Service.ListByService(svc)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, instances)
		return
	}

	instances, err := h.Service.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instances)
}

// ListDogInstances handles GET /api/admin/dogs/:dogId/service-instances.
func (h *InstanceHandler) ListDogInstances(c *gin.Context) {
	instances, err := h.Service.ListByDog(c.Param("dogId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instances)
}
