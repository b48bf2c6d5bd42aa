package cart

import (
	"context"
	"fmt"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"sort"
)

const (
	DefaultSubstituteLimit = 5

	ReasonAssetNotFound = "asset not found"
)

type SubstitutionOutcome struct {
	SlotID  string `json:"slot_id"`
	AssetID string `json:"asset_id"`
	Added   bool   `json:"added"`
	Reason  string `json:"reason,omitempty"`
}

// Resolver shapes substitute lookups for missing preset slots. It does not
// search itself; candidates come from the AssetLookup collaborator.
type Resolver struct {
	lookup AssetLookup
	limit  int
}

func NewResolver(lookup AssetLookup, limit int) *Resolver {
	if limit <= 0 {
		limit = DefaultSubstituteLimit
	}
	return &Resolver{lookup: lookup, limit: limit}
}

// ProposeSubstitutes returns available candidates per substitutable missing
// slot, keyed by slot id. Assets that are already staged are skipped.
// Available assets can only be checked out, so check-in presets get none.
func (r *Resolver) ProposeSubstitutes(ctx context.Context, direction metadata.Direction, missing []models.MissingSlot, staged []models.CartItem) (map[string][]models.AssetSnapshot, error) {
	if direction == metadata.DirectionCheckIn {
		return map[string][]models.AssetSnapshot{}, nil
	}

	stagedIDs := make(map[string]bool, len(staged))
	for _, item := range staged {
		stagedIDs[item.AssetID] = true
	}

	proposals := make(map[string][]models.AssetSnapshot, len(missing))
	for _, slot := range missing {
		if !slot.Substitutable {
			continue
		}

		found, err := r.lookup.Search(ctx, models.AssetQuery{
			CategoryID: slot.Slot.Category(),
			Status:     metadata.StatusAvailable,
			Limit:      r.limit + len(staged),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search substitutes for slot %s: %w", slot.Slot.ID, err)
		}

		candidates := make([]models.AssetSnapshot, 0, r.limit)
		for _, asset := range found {
			if len(candidates) == r.limit {
				break
			}
			if stagedIDs[asset.ID] || asset.Status != metadata.StatusAvailable {
				continue
			}
			candidates = append(candidates, asset)
		}
		proposals[slot.Slot.ID] = candidates
	}

	return proposals, nil
}

type resolvedSelection struct {
	slotID  string
	assetID string
	asset   *models.AssetSnapshot
	reason  string
}

// resolveSelections fetches the chosen assets in the preset's slot order.
// Selections naming unknown slots come last, sorted by slot id.
func (r *Resolver) resolveSelections(ctx context.Context, preset models.PresetDefinition, selections map[string]string) []resolvedSelection {
	order := make([]string, 0, len(selections))
	known := make(map[string]bool, len(preset.Slots))
	for _, slot := range preset.Slots {
		known[slot.ID] = true
		if _, ok := selections[slot.ID]; ok {
			order = append(order, slot.ID)
		}
	}

	var unknown []string
	for slotID := range selections {
		if !known[slotID] {
			unknown = append(unknown, slotID)
		}
	}
	sort.Strings(unknown)
	order = append(order, unknown...)

	resolved := make([]resolvedSelection, 0, len(order))
	for _, slotID := range order {
		selection := resolvedSelection{slotID: slotID, assetID: selections[slotID]}

		switch {
		case !known[slotID]:
			selection.reason = "unknown slot"
		case selection.assetID == "":
			selection.reason = "no asset selected"
		default:
			asset, err := r.lookup.Get(ctx, selection.assetID)
			switch {
			case err != nil:
				selection.reason = err.Error()
			case asset == nil:
				selection.reason = ReasonAssetNotFound
			default:
				selection.asset = asset
			}
		}

		resolved = append(resolved, selection)
	}

	return resolved
}
