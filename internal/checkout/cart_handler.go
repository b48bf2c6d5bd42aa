package checkout

import (
	"context"
	"errors"
	"inventory/internal/cart"
	"inventory/internal/inventory/assets"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type assetResolver interface {
	Resolve(ctx context.Context, ref assets.AssetRef) (*models.AssetSnapshot, error)
}

type userDirectory interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

var errForbiddenAssignee = errors.New("only moderators can assign items to other users")

type CartHandler struct {
	sessions *Sessions
	assets   assetResolver
	catalog  cart.PresetCatalog
	users    userDirectory
	logger   *zap.Logger
}

func NewCartHandler(sessions *Sessions, assets assetResolver, catalog cart.PresetCatalog, users userDirectory, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CartHandler{
		sessions: sessions,
		assets:   assets,
		catalog:  catalog,
		users:    users,
		logger:   logger,
	}
}

// RegisterRoutes expects the router to sit behind the JWT middleware.
func (h *CartHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/cart", h.GetCart)
	router.DELETE("/cart", h.ClearCart)
	router.POST("/cart/validate", h.ValidateItem)
	router.POST("/cart/items", h.AddItem)
	router.PATCH("/cart/items/:asset_id", h.UpdateItem)
	router.DELETE("/cart/items/:asset_id", h.RemoveItem)
	router.POST("/cart/commit", h.Commit)
	router.GET("/cart/presets", h.MatchPresets)
	router.POST("/cart/presets/:id/substitutes", h.ProposeSubstitutes)
	router.POST("/cart/presets/:id/substitutions", h.ConfirmSubstitutions)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	items, version := session.Snapshot()
	etag := h.sessions.ETag(version)
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, newCartView(items, version))
}

func (h *CartHandler) ValidateItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	direction, err := metadata.NewDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid direction", "details": err.Error()})
		return
	}

	asset, err := h.assets.Resolve(c.Request.Context(), req.AssetRef)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, validateView{Verdict: session.CanAddItem(*asset, direction), Asset: asset})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	direction, err := metadata.NewDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid direction", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	patch, err := h.preparePatch(ctx, session.Identity(), direction, req.patch())
	if err != nil {
		h.respondError(c, err)
		return
	}

	asset, err := h.assets.Resolve(ctx, req.AssetRef)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := session.Stage(*asset, direction, patch); err != nil {
		h.respondError(c, err)
		return
	}

	item, _ := session.Item(asset.ID)
	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	assetID := c.Param("asset_id")
	current, staged := session.Item(assetID)
	if !staged {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart"})
		return
	}

	var req models.CartItemPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	patch, err := h.preparePatch(c.Request.Context(), session.Identity(), current.Direction, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := session.UpdateItem(assetID, patch); err != nil {
		h.respondError(c, err)
		return
	}

	item, staged := session.Item(assetID)
	if !staged {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.RemoveItem(c.Param("asset_id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.ClearCart(); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Commit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	result, err := session.Checkout(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	view := commitView{CommitResult: result, Outcome: result.Outcome(), Remaining: session.GetItemCount()}
	switch view.Outcome {
	case cart.OutcomePartialFailure:
		c.JSON(http.StatusMultiStatus, view)
	case cart.OutcomeTotalFailure:
		c.JSON(http.StatusUnprocessableEntity, view)
	default:
		c.JSON(http.StatusOK, view)
	}
}

func (h *CartHandler) MatchPresets(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	catalog, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.MatchPresets(catalog))
}

func (h *CartHandler) ProposeSubstitutes(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req substitutesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	preset, err := h.catalog.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	match := session.MatchPreset(*preset)
	missing := filterMissing(match.MissingSlots, req.SlotIDs)
	proposals, err := session.ProposeSubstitutes(ctx, preset.Direction, missing)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preset_id":     preset.ID,
		"missing_slots": missing,
		"proposals":     proposals,
	})
}

func (h *CartHandler) ConfirmSubstitutions(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req substitutionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	preset, err := h.catalog.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	outcomes, err := session.ConfirmSubstitutions(ctx, *preset, req.Selections)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcomes":   outcomes,
		"item_count": session.GetItemCount(),
	})
}

func (h *CartHandler) session(c *gin.Context) (*cart.Session, bool) {
	identity, err := security.IdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return h.sessions.For(identity), true
}

// preparePatch normalises the return date and fills in the assignee name.
// Assigning an item to somebody else needs at least the moderator role.
// Check-ins carry notes only, their loan fields are dropped unchecked.
func (h *CartHandler) preparePatch(ctx context.Context, identity models.Identity, direction metadata.Direction, patch models.CartItemPatch) (models.CartItemPatch, error) {
	if direction != metadata.DirectionCheckOut {
		patch.AssignedUserID = nil
		patch.AssignedUserName = nil
		patch.ExpectedReturnDate = nil
	}

	if patch.ExpectedReturnDate != nil {
		date, err := models.ParseReturnDate(*patch.ExpectedReturnDate)
		if err != nil {
			return patch, &invalidPatchError{err: err}
		}
		patch.ExpectedReturnDate = &date
	}

	if patch.AssignedUserID == nil {
		return patch, nil
	}

	assigneeID := *patch.AssignedUserID
	switch {
	case assigneeID == "":
		cleared := ""
		patch.AssignedUserName = &cleared
	case assigneeID == identity.ID:
		name := identity.Name
		patch.AssignedUserName = &name
	default:
		if !identity.Role.CanAssignToOthers() {
			return patch, errForbiddenAssignee
		}
		user, err := h.users.GetUser(ctx, assigneeID)
		if err != nil {
			var notFound *custom_error.NotFoundError
			if errors.As(err, &notFound) {
				return patch, &invalidPatchError{err: err}
			}
			return patch, err
		}
		name := user.Fullname
		if name == "" {
			name = user.Username
		}
		patch.AssignedUserName = &name
	}

	return patch, nil
}

type invalidPatchError struct {
	err error
}

func (e *invalidPatchError) Error() string {
	return e.err.Error()
}

func (e *invalidPatchError) Unwrap() error {
	return e.err
}

func (h *CartHandler) respondError(c *gin.Context, err error) {
	var (
		rejected *cart.StageRejectedError
		invalid  *invalidPatchError
		notFound *custom_error.NotFoundError
	)

	switch {
	case errors.Is(err, cart.ErrCommitInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is being committed", "details": err.Error()})
	case errors.Is(err, errForbiddenAssignee):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": err.Error()})
	case errors.As(err, &rejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "Asset cannot be staged",
			"asset_id": rejected.AssetID,
			"reason":   rejected.Reason,
		})
	case errors.As(err, &invalid), errors.Is(err, assets.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "details": err.Error()})
	default:
		h.logger.Error("Cart request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}

func filterMissing(missing []models.MissingSlot, slotIDs []string) []models.MissingSlot {
	if len(slotIDs) == 0 {
		return missing
	}

	wanted := make(map[string]bool, len(slotIDs))
	for _, id := range slotIDs {
		wanted[id] = true
	}

	filtered := make([]models.MissingSlot, 0, len(slotIDs))
	for _, slot := range missing {
		if wanted[slot.Slot.ID] {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
