package category

import (
	"context"
	"fmt"
	"inventory/internal/repository"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ItemCategoryRepository struct {
	repository *repository.Repository
}

func NewItemCategoryRepository(r *repository.Repository) *ItemCategoryRepository {
	return &ItemCategoryRepository{repository: r}
}

// GetCategories lists categories, optionally of a single type, ordered by label.
func (r *ItemCategoryRepository) GetCategories(ctx context.Context, categoryType string) ([]models.ItemCategory, error) {
	categories := []models.ItemCategory{}
	query := r.repository.GoquDBWrapper.
		Select(goqu.I("id").As("category_id"), "type", "label", goqu.COALESCE(goqu.I("pyr_id"), "").As("pyr_id")).
		From("item_categories").
		Order(goqu.I("label").Asc(), goqu.I("id").Asc())
	if categoryType != "" {
		query = query.Where(goqu.Ex{"type": categoryType})
	}

	if err := query.Executor().ScanStructsContext(ctx, &categories); err != nil {
		return nil, fmt.Errorf("unable to list item categories: %w", err)
	}

	return categories, nil
}
