package locations

import (
	"context"
	"inventory/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type locationLister interface {
	GetLocations(ctx context.Context) ([]models.Location, error)
}

type LocationHandler struct {
	Repository locationLister
}

func NewLocationHandler(r locationLister) *LocationHandler {
	return &LocationHandler{Repository: r}
}

func (h *LocationHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/locations", h.GetLocations)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.Repository.GetLocations(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}
