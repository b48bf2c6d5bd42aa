package category

import (
	"context"
	"inventory/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type categoryLister interface {
	GetCategories(ctx context.Context, categoryType string) ([]models.ItemCategory, error)
}

type ItemCategoryHandler struct {
	repository categoryLister
}

func NewItemCategoryHandler(r categoryLister) *ItemCategoryHandler {
	return &ItemCategoryHandler{repository: r}
}

func (h *ItemCategoryHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/assets/categories", h.GetItemCategories)
}

func (h *ItemCategoryHandler) GetItemCategories(c *gin.Context) {
	itemCategories, err := h.repository.GetCategories(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, itemCategories)
}
