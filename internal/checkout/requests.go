package checkout

import (
	"inventory/internal/cart"
	"inventory/internal/inventory/assets"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

type stageRequest struct {
	assets.AssetRef
	Direction          string  `json:"direction" binding:"required"`
	AssignedUserID     *string `json:"assigned_user_id"`
	ExpectedReturnDate *string `json:"expected_return_date"`
	Notes              *string `json:"notes"`
}

func (r stageRequest) patch() models.CartItemPatch {
	return models.CartItemPatch{
		AssignedUserID:     r.AssignedUserID,
		ExpectedReturnDate: r.ExpectedReturnDate,
		Notes:              r.Notes,
	}
}

type validateRequest struct {
	assets.AssetRef
	Direction string `json:"direction" binding:"required"`
}

type substitutesRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

type substitutionsRequest struct {
	Selections map[string]string `json:"selections" binding:"required"`
}

type cartView struct {
	Items         []models.CartItem `json:"items"`
	ItemCount     int               `json:"item_count"`
	CheckOutCount int               `json:"check_out_count"`
	CheckInCount  int               `json:"check_in_count"`
	Version       uint64            `json:"version"`
}

func newCartView(items []models.CartItem, version uint64) cartView {
	view := cartView{Items: items, ItemCount: len(items), Version: version}
	for _, item := range items {
		if item.Direction == metadata.DirectionCheckOut {
			view.CheckOutCount++
		} else {
			view.CheckInCount++
		}
	}
	return view
}

type commitView struct {
	cart.CommitResult
	Outcome   cart.Outcome `json:"outcome"`
	Remaining int          `json:"remaining"`
}

type validateView struct {
	cart.Verdict
	Asset *models.AssetSnapshot `json:"asset"`
}
