package handlers

import (
	"net/http"

	"github.com/KasenaM/kisite-canines/models"
	"github.com/KasenaM/kisite-canines/services/catalog"

	"github.com/gin-gonic/gin"
)

// ListServicePackages handles GET /api/packages. An optional "service" query
// narrows the catalog to one service type.
func ListServicePackages(c *gin.Context) {
	if svcName := c.Query("service"); svcName != "" {
		svc := models.ServiceType(svcName)
		if !svc.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
			return
		}
		c.JSON(http.StatusOK, gin.H{string(svc): catalog.Packages(svc)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		string(models.ServiceTraining): catalog.Packages(models.ServiceTraining),
		string(models.ServiceGrooming): catalog.Packages(models.ServiceGrooming),
		string(models.ServiceBoarding): catalog.Packages(models.ServiceBoarding),
	})
}
