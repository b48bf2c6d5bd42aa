package models

type ItemCategory struct {
	ID    string `json:"id,omitempty" db:"category_id"`
	Type  string `json:"type,omitempty" db:"type"`
	Label string `json:"label,omitempty" db:"label"`
	PyrID string `json:"pyr_id,omitempty" db:"pyr_id"`
}
