package cart

import (
	"context"
	"inventory/pkg/models"
)

// AssetLookup resolves scanned or typed codes and substitution candidates.
type AssetLookup interface {
	Search(ctx context.Context, query models.AssetQuery) ([]models.AssetSnapshot, error)
	Get(ctx context.Context, assetID string) (*models.AssetSnapshot, error)
}

// StateChanger applies one staged operation on the backend.
type StateChanger interface {
	CommitOne(ctx context.Context, req models.CommitRequest) error
}

type PresetCatalog interface {
	List(ctx context.Context) ([]models.PresetDefinition, error)
	Get(ctx context.Context, presetID string) (*models.PresetDefinition, error)
}
