package cart

import (
	"inventory/pkg/models"
	"sort"
)

// MatchPresets reports which presets the staged items satisfy, fully or in
// part. Each staged item counts towards at most one slot of a preset: asset
// slots claim their item first, category slots then take unclaimed items
// in staging order. Presets with nothing satisfied are left out.
func MatchPresets(items []models.CartItem, catalog []models.PresetDefinition) []models.PresetMatchResult {
	results := make([]models.PresetMatchResult, 0, len(catalog))
	for _, preset := range catalog {
		result := MatchPreset(items, preset)
		if result.CompletionRatio > 0 {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.CompletionRatio != b.CompletionRatio {
			return a.CompletionRatio > b.CompletionRatio
		}
		if a.PresetName != b.PresetName {
			return a.PresetName < b.PresetName
		}
		return a.PresetID < b.PresetID
	})

	return results
}

// MatchPreset scores a single preset, including one nothing is staged for.
func MatchPreset(items []models.CartItem, preset models.PresetDefinition) models.PresetMatchResult {
	claimed := make([]bool, len(items))
	have := make([]int, len(preset.Slots))

	for i, slot := range preset.Slots {
		if !slot.IsAssetSlot() {
			continue
		}
		for j, item := range items {
			if !claimed[j] && item.AssetID == *slot.AssetID {
				claimed[j] = true
				have[i] = 1
				break
			}
		}
	}

	for i, slot := range preset.Slots {
		if slot.IsAssetSlot() {
			continue
		}
		category := slot.Category()
		for j, item := range items {
			if have[i] >= slot.Need() {
				break
			}
			if !claimed[j] && category != "" && item.Asset.Category.ID == category {
				claimed[j] = true
				have[i]++
			}
		}
	}

	result := models.PresetMatchResult{
		PresetID:       preset.ID,
		PresetName:     preset.Name,
		SatisfiedSlots: []models.PresetSlot{},
		MissingSlots:   []models.MissingSlot{},
	}

	var required, requiredSatisfied, optionalSatisfied int
	for i, slot := range preset.Slots {
		satisfied := have[i] >= slot.Need()

		if slot.IsRequired {
			required++
			if satisfied {
				requiredSatisfied++
			}
		} else if satisfied {
			optionalSatisfied++
		}

		if satisfied {
			result.SatisfiedSlots = append(result.SatisfiedSlots, slot)
			continue
		}
		result.MissingSlots = append(result.MissingSlots, models.MissingSlot{
			PresetID:      preset.ID,
			Slot:          slot,
			Have:          have[i],
			Need:          slot.Need(),
			Substitutable: slot.Category() != "",
		})
	}

	switch {
	case required > 0:
		result.CompletionRatio = float64(requiredSatisfied) / float64(required)
	case optionalSatisfied > 0:
		// A kit made only of optional slots counts as complete once
		// anything from it is staged.
		result.CompletionRatio = 1
	}
	result.FullySatisfied = requiredSatisfied == required

	return result
}
