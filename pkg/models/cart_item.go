package models

import (
	"fmt"
	"inventory/pkg/metadata"
	"time"
)

const ReturnDateLayout = "2006-01-02"

// CartItem is one staged operation. AssetID and Direction are fixed once the
// item exists; only the metadata fields change.
type CartItem struct {
	AssetID            string             `json:"asset_id"`
	Direction          metadata.Direction `json:"direction"`
	Asset              AssetSnapshot      `json:"asset"`
	AssignedUserID     *string            `json:"assigned_user_id,omitempty"`
	AssignedUserName   *string            `json:"assigned_user_name,omitempty"`
	ExpectedReturnDate *string            `json:"expected_return_date,omitempty"` // nil means open-ended
	Notes              *string            `json:"notes,omitempty"`
}

func (i *CartItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.AssetID,
		ResourceType: "asset",
	}
}

// CartItemPatch carries metadata changes for an existing item. A nil field is
// left untouched, an empty string clears the field.
type CartItemPatch struct {
	AssignedUserID     *string `json:"assigned_user_id"`
	AssignedUserName   *string `json:"assigned_user_name"`
	ExpectedReturnDate *string `json:"expected_return_date"`
	Notes              *string `json:"notes"`
}

func (p CartItemPatch) IsEmpty() bool {
	return p.AssignedUserID == nil && p.AssignedUserName == nil && p.ExpectedReturnDate == nil && p.Notes == nil
}

// Apply merges the patch into the item. Assignee and return date only mean
// something for check-outs and are ignored for check-ins.
func (p CartItemPatch) Apply(item *CartItem) {
	if item.Direction == metadata.DirectionCheckOut {
		item.AssignedUserID = merge(item.AssignedUserID, p.AssignedUserID)
		item.AssignedUserName = merge(item.AssignedUserName, p.AssignedUserName)
		item.ExpectedReturnDate = merge(item.ExpectedReturnDate, p.ExpectedReturnDate)
	}
	item.Notes = merge(item.Notes, p.Notes)
}

func merge(current, next *string) *string {
	if next == nil {
		return current
	}
	if *next == "" {
		return nil
	}
	value := *next
	return &value
}

// ParseReturnDate checks an ISO date (YYYY-MM-DD). An empty value is valid and
// stands for an open-ended loan.
func ParseReturnDate(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	date, err := time.Parse(ReturnDateLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid expected return date %q, expected format YYYY-MM-DD", value)
	}
	return date.Format(ReturnDateLayout), nil
}
