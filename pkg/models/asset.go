package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"inventory/pkg/metadata"
)

// AssetSnapshot is the read model of one physical asset as it was when it
// was looked up. It is copied by value and never updated in place.
type AssetSnapshot struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Status        metadata.AssetStatus `json:"status"`
	Category      ItemCategory         `json:"category"`
	Location      Location             `json:"location,omitempty"`
	SerialNumber  *string              `json:"serial_number,omitempty"`
	PyrCode       string               `json:"pyrcode"`
	CurrentValue  *float64             `json:"current_value,omitempty"`
	PurchasePrice *float64             `json:"purchase_price,omitempty"`
	ImageURL      *string              `json:"image_url,omitempty"`
}

// DisplayName is what error lists show next to the asset id.
func (a *AssetSnapshot) DisplayName() string {
	switch {
	case a.Name != "":
		return a.Name
	case a.PyrCode != "":
		return a.PyrCode
	default:
		return a.Category.Label
	}
}

func (a *AssetSnapshot) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}

type FlatAssetRecord struct {
	ID            string   `db:"asset_id"`
	Name          string   `db:"asset_name"`
	Serial        *string  `db:"item_serial"`
	Status        string   `db:"status"`
	PyrCode       *string  `db:"pyr_code"`
	CurrentValue  *float64 `db:"current_value"`
	PurchasePrice *float64 `db:"purchase_price"`
	ImageURL      *string  `db:"image_url"`
	LocationID    *string  `db:"location_id"`
	LocationName  *string  `db:"location_name"`
	CategoryID    string   `db:"category_id"`
	CategoryType  string   `db:"category_type"`
	CategoryLabel string   `db:"category_label"`
	CategoryPyrID *string  `db:"category_pyr_id"`
}

func (fa *FlatAssetRecord) TransformToAsset() (AssetSnapshot, error) {
	status, err := metadata.NewAssetStatus(fa.Status)
	if err != nil {
		return AssetSnapshot{}, fmt.Errorf("asset %s: %w", fa.ID, err)
	}

	asset := AssetSnapshot{
		ID:            fa.ID,
		Name:          fa.Name,
		Status:        status,
		SerialNumber:  fa.Serial,
		CurrentValue:  fa.CurrentValue,
		PurchasePrice: fa.PurchasePrice,
		ImageURL:      fa.ImageURL,
		Category: ItemCategory{
			ID:    fa.CategoryID,
			Type:  fa.CategoryType,
			Label: fa.CategoryLabel,
			PyrID: deref(fa.CategoryPyrID),
		},
		PyrCode: deref(fa.PyrCode),
	}
	if fa.LocationID != nil {
		asset.Location = Location{ID: *fa.LocationID, Name: deref(fa.LocationName)}
	}

	return asset, nil
}

type rawAssetSnapshot struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	// Older clients nest the category, newer ones send only the id.
	Category *struct {
		ID    string `json:"id"`
		Type  string `json:"type"`
		Label string `json:"label"`
		PyrID string `json:"pyr_id"`
	} `json:"category"`
	CategoryID    string    `json:"category_id"`
	Location      *Location `json:"location"`
	SerialNumber  *string   `json:"serial_number"`
	PyrCode       string    `json:"pyrcode"`
	CurrentValue  *float64  `json:"current_value"`
	PurchasePrice *float64  `json:"purchase_price"`
	ImageURL      *string   `json:"image_url"`
}

// ParseAssetSnapshot validates a loosely shaped asset payload once, so the
// rest of the code can rely on id, status and category being present.
func ParseAssetSnapshot(data []byte) (AssetSnapshot, error) {
	var raw rawAssetSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return AssetSnapshot{}, fmt.Errorf("failed to unmarshal asset: %w", err)
	}

	if raw.ID == "" {
		return AssetSnapshot{}, errors.New("asset id is required")
	}

	status, err := metadata.NewAssetStatus(raw.Status)
	if err != nil {
		return AssetSnapshot{}, fmt.Errorf("asset %s: %w", raw.ID, err)
	}

	var category ItemCategory
	switch {
	case raw.Category != nil && raw.Category.ID != "":
		category = ItemCategory{
			ID:    raw.Category.ID,
			Type:  raw.Category.Type,
			Label: raw.Category.Label,
			PyrID: raw.Category.PyrID,
		}
	case raw.CategoryID != "":
		category = ItemCategory{ID: raw.CategoryID}
	default:
		return AssetSnapshot{}, fmt.Errorf("asset %s: category is required", raw.ID)
	}

	asset := AssetSnapshot{
		ID:            raw.ID,
		Name:          raw.Name,
		Status:        status,
		Category:      category,
		SerialNumber:  raw.SerialNumber,
		PyrCode:       raw.PyrCode,
		CurrentValue:  raw.CurrentValue,
		PurchasePrice: raw.PurchasePrice,
		ImageURL:      raw.ImageURL,
	}
	if raw.Location != nil {
		asset.Location = *raw.Location
	}

	return asset, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
