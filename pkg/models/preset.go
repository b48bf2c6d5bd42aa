package models

import (
	"fmt"
	"inventory/pkg/metadata"
)

// PresetSlot is either a specific asset (AssetID) or a number of assets of
// one category (CategoryID + Quantity). An asset slot may still carry a
// CategoryID, which is then used to look for substitutes.
type PresetSlot struct {
	ID         string  `json:"id"`
	Label      string  `json:"label,omitempty"`
	AssetID    *string `json:"asset_id,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	IsRequired bool    `json:"is_required"`
}

func (s PresetSlot) IsAssetSlot() bool {
	return s.AssetID != nil && *s.AssetID != ""
}

// Need is how many staged items satisfy the slot.
func (s PresetSlot) Need() int {
	if s.IsAssetSlot() || s.Quantity < 1 {
		return 1
	}
	return s.Quantity
}

func (s PresetSlot) Category() string {
	return deref(s.CategoryID)
}

type PresetDefinition struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Direction metadata.Direction `json:"direction"`
	Slots     []PresetSlot       `json:"slots"`
}

// Normalize fills defaults and rejects slots that name neither an asset nor
// a category.
func (p *PresetDefinition) Normalize() error {
	if p.ID == "" {
		return fmt.Errorf("preset id is required")
	}
	if p.Direction == "" {
		p.Direction = metadata.DirectionCheckOut
	} else if !p.Direction.IsValid() {
		return fmt.Errorf("preset %s: invalid direction %s", p.ID, p.Direction)
	}

	seen := make(map[string]bool, len(p.Slots))
	for i := range p.Slots {
		slot := &p.Slots[i]
		if slot.ID == "" {
			slot.ID = fmt.Sprintf("slot-%d", i+1)
		}
		if seen[slot.ID] {
			return fmt.Errorf("preset %s: duplicate slot id %s", p.ID, slot.ID)
		}
		seen[slot.ID] = true

		if !slot.IsAssetSlot() && slot.Category() == "" {
			return fmt.Errorf("preset %s: slot %s needs an asset or a category", p.ID, slot.ID)
		}
		if !slot.IsAssetSlot() && slot.Quantity < 1 {
			slot.Quantity = 1
		}
	}

	return nil
}

func (p *PresetDefinition) Slot(id string) (PresetSlot, bool) {
	for _, slot := range p.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return PresetSlot{}, false
}

type MissingSlot struct {
	PresetID      string     `json:"preset_id"`
	Slot          PresetSlot `json:"slot"`
	Have          int        `json:"have"`
	Need          int        `json:"need"`
	Substitutable bool       `json:"substitutable"`
}

type PresetMatchResult struct {
	PresetID        string        `json:"preset_id"`
	PresetName      string        `json:"preset_name"`
	SatisfiedSlots  []PresetSlot  `json:"satisfied_slots"`
	MissingSlots    []MissingSlot `json:"missing_slots"`
	CompletionRatio float64       `json:"completion_ratio"`
	FullySatisfied  bool          `json:"fully_satisfied"`
}

type FlatPresetSlotRecord struct {
	PresetID        string  `db:"preset_id"`
	PresetName      string  `db:"preset_name"`
	PresetDirection string  `db:"preset_direction"`
	SlotID          *string `db:"slot_id"`
	SlotLabel       *string `db:"slot_label"`
	AssetID         *string `db:"asset_id"`
	CategoryID      *string `db:"category_id"`
	Quantity        *int    `db:"quantity"`
	IsRequired      *bool   `db:"is_required"`
}
