package presets

import (
	"context"
	"inventory/internal/cart"
	"inventory/pkg/models"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 5 * time.Minute

	listKey = "all"
)

// CachedCatalog keeps preset definitions in memory for a short time. The
// catalog changes rarely and is read on every cart view.
type CachedCatalog struct {
	source  cart.PresetCatalog
	byID    *expirable.LRU[string, models.PresetDefinition]
	listing *expirable.LRU[string, []models.PresetDefinition]
}

func NewCachedCatalog(source cart.PresetCatalog, size int, ttl time.Duration) *CachedCatalog {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &CachedCatalog{
		source:  source,
		byID:    expirable.NewLRU[string, models.PresetDefinition](size, nil, ttl),
		listing: expirable.NewLRU[string, []models.PresetDefinition](1, nil, ttl),
	}
}

func (c *CachedCatalog) List(ctx context.Context) ([]models.PresetDefinition, error) {
	if cached, ok := c.listing.Get(listKey); ok {
		return clonePresets(cached), nil
	}

	definitions, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}

	c.listing.Add(listKey, clonePresets(definitions))
	for _, definition := range definitions {
		c.byID.Add(definition.ID, clonePreset(definition))
	}

	return definitions, nil
}

func (c *CachedCatalog) Get(ctx context.Context, presetID string) (*models.PresetDefinition, error) {
	if cached, ok := c.byID.Get(presetID); ok {
		definition := clonePreset(cached)
		return &definition, nil
	}

	definition, err := c.source.Get(ctx, presetID)
	if err != nil {
		return nil, err
	}
	c.byID.Add(presetID, clonePreset(*definition))

	return definition, nil
}

func (c *CachedCatalog) Invalidate() {
	c.listing.Purge()
	c.byID.Purge()
}

// Callers may normalise or reorder slots, so cached entries are never
// handed out directly.
func clonePreset(definition models.PresetDefinition) models.PresetDefinition {
	definition.Slots = append([]models.PresetSlot(nil), definition.Slots...)
	return definition
}

func clonePresets(definitions []models.PresetDefinition) []models.PresetDefinition {
	out := make([]models.PresetDefinition, len(definitions))
	for i, definition := range definitions {
		out[i] = clonePreset(definition)
	}
	return out
}
