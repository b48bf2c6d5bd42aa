package assets

import (
	"context"
	"errors"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type assetFinder interface {
	Resolve(ctx context.Context, ref AssetRef) (*models.AssetSnapshot, error)
	Search(ctx context.Context, query models.AssetQuery) ([]models.AssetSnapshot, error)
}

type AssetHandler struct {
	service assetFinder
}

func NewAssetHandler(service assetFinder) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/assets", h.SearchAssets)
	router.GET("/assets/:id", h.GetAsset)
	router.GET("/assets/pyrcode/:code", h.GetAssetByPyrCode)
}

func (h *AssetHandler) SearchAssets(c *gin.Context) {
	var query models.AssetQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}
	if query.Status != "" {
		status, err := metadata.NewAssetStatus(string(query.Status))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status", "details": err.Error()})
			return
		}
		query.Status = status
	}

	found, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to search assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	h.respondWithAsset(c, AssetRef{AssetID: c.Param("id")})
}

func (h *AssetHandler) GetAssetByPyrCode(c *gin.Context) {
	h.respondWithAsset(c, AssetRef{PyrCode: c.Param("code")})
}

func (h *AssetHandler) respondWithAsset(c *gin.Context, ref AssetRef) {
	asset, err := h.service.Resolve(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset reference", "details": err.Error()})
			return
		}
		var notFound *custom_error.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}
