package models

import "inventory/pkg/metadata"

type CommitMetadata struct {
	AssignedUserID     *string `json:"assigned_user_id,omitempty"`
	AssignedUserName   *string `json:"assigned_user_name,omitempty"`
	ExpectedReturnDate *string `json:"expected_return_date,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

// CommitRequest is the single backend state change issued for one cart item.
// ExpectedStatus is the status the asset had when it was staged.
type CommitRequest struct {
	AssetID        string
	Direction      metadata.Direction
	ExpectedStatus metadata.AssetStatus
	Metadata       CommitMetadata
	PerformedBy    Identity
}

func NewCommitRequest(item CartItem, performedBy Identity) CommitRequest {
	return CommitRequest{
		AssetID:        item.AssetID,
		Direction:      item.Direction,
		ExpectedStatus: item.Asset.Status,
		Metadata: CommitMetadata{
			AssignedUserID:     item.AssignedUserID,
			AssignedUserName:   item.AssignedUserName,
			ExpectedReturnDate: item.ExpectedReturnDate,
			Notes:              item.Notes,
		},
		PerformedBy: performedBy,
	}
}

type AssetQuery struct {
	Text       string               `form:"q"`
	CategoryID string               `form:"category_id"`
	Status     metadata.AssetStatus `form:"status"`
	Limit      int                  `form:"limit"`
}

func (r CommitRequest) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.AssetID,
		ResourceType: "asset",
	}
}
