package cart

import (
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

const (
	ReasonAlreadyStaged        = "already staged"
	ReasonUnsupportedDirection = "unsupported direction"
)

type Verdict struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func accept() Verdict {
	return Verdict{OK: true}
}

func reject(reason string) Verdict {
	return Verdict{Reason: reason}
}

// Err converts a rejected verdict into a StageRejectedError.
func (v Verdict) Err(assetID string) error {
	if v.OK {
		return nil
	}
	return &StageRejectedError{AssetID: assetID, Reason: v.Reason}
}

// CanAdd decides whether asset may be staged in the given direction next to
// the already staged items. The first failing rule wins. It has no side
// effects and is safe to call on every scan.
func CanAdd(items []models.CartItem, asset models.AssetSnapshot, direction metadata.Direction) Verdict {
	for _, item := range items {
		if item.AssetID == asset.ID {
			return reject(ReasonAlreadyStaged)
		}
	}

	if !direction.IsValid() {
		return reject(ReasonUnsupportedDirection)
	}

	// RETIRED and MISSING never match a required status, so they are
	// rejected in both directions.
	if asset.Status != direction.RequiredStatus() {
		return reject("currently " + asset.Status.Label())
	}

	return accept()
}
