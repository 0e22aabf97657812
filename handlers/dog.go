package handlers

import (
	"net/http"

	"github.com/KasenaM/kisite-canines/services/dog"

	"github.com/gin-gonic/gin"
)

// DogHandler exposes the dog profile endpoints.
type DogHandler struct {
	Service dog.DogService
}

// NewDogHandler constructs a DogHandler.
func NewDogHandler(svc dog.DogService) *DogHandler {
	return &DogHandler{Service: svc}
}

// ListMyDogs handles GET /api/dogs.
func (h *DogHandler) ListMyDogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dogs, err := h.Service.ListMine(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dogs)
}

// CreateDog handles POST /api/dogs.
func (h *DogHandler) CreateDog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input dog.CreateDogInput
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

// UpdateDog handles PATCH /api/dogs/:id.
func (h *DogHandler) UpdateDog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input dog.UpdateDogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Service.Update(userID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
