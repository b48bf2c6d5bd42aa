package presets

import (
	"context"
	"fmt"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type PresetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *PresetsRepository {
	return &PresetsRepository{repository: r}
}

func (r *PresetsRepository) List(ctx context.Context) ([]models.PresetDefinition, error) {
	return r.fetchPresets(ctx, nil)
}

func (r *PresetsRepository) Get(ctx context.Context, presetID string) (*models.PresetDefinition, error) {
	found, err := r.fetchPresets(ctx, goqu.Ex{"p.id": presetID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, &custom_error.NotFoundError{Resource: "preset", ID: presetID}
	}

	return &found[0], nil
}

func (r *PresetsRepository) fetchPresets(ctx context.Context, condition goqu.Expression) ([]models.PresetDefinition, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("p.id").As("preset_id"),
			goqu.I("p.name").As("preset_name"),
			goqu.I("p.direction").As("preset_direction"),
			goqu.I("s.id").As("slot_id"),
			goqu.I("s.label").As("slot_label"),
			goqu.I("s.item_id").As("asset_id"),
			goqu.I("s.item_category_id").As("category_id"),
			goqu.I("s.quantity").As("quantity"),
			goqu.I("s.is_required").As("is_required"),
		).
		From(goqu.T("presets").As("p")).
		LeftJoin(
			goqu.T("preset_slots").As("s"),
			goqu.On(goqu.Ex{"s.preset_id": goqu.I("p.id")}),
		).
		Order(goqu.I("p.name").Asc(), goqu.I("p.id").Asc(), goqu.I("s.position").Asc())
	if condition != nil {
		query = query.Where(condition)
	}

	var records []models.FlatPresetSlotRecord
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to select presets from database: %w", err)
	}

	return groupPresets(records)
}

// groupPresets folds the joined rows back into definitions. Rows arrive
// ordered by preset, so a new preset id starts a new definition.
func groupPresets(records []models.FlatPresetSlotRecord) ([]models.PresetDefinition, error) {
	var definitions []models.PresetDefinition
	for _, record := range records {
		if len(definitions) == 0 || definitions[len(definitions)-1].ID != record.PresetID {
			definitions = append(definitions, models.PresetDefinition{
				ID:        record.PresetID,
				Name:      record.PresetName,
				Direction: metadata.Direction(record.PresetDirection),
			})
		}
		if record.SlotID == nil {
			continue
		}

		slot := models.PresetSlot{
			ID:         *record.SlotID,
			AssetID:    record.AssetID,
			CategoryID: record.CategoryID,
			IsRequired: record.IsRequired != nil && *record.IsRequired,
		}
		if record.SlotLabel != nil {
			slot.Label = *record.SlotLabel
		}
		if record.Quantity != nil {
			slot.Quantity = *record.Quantity
		}

		current := &definitions[len(definitions)-1]
		current.Slots = append(current.Slots, slot)
	}

	for i := range definitions {
		if err := definitions[i].Normalize(); err != nil {
			return nil, err
		}
	}

	return definitions, nil
}
