package locations

import (
	"context"
	"fmt"
	"inventory/internal/repository"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type LocationRepository struct {
	Repository *repository.Repository
}

func NewLocationRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{Repository: r}
}

func (r *LocationRepository) GetLocations(ctx context.Context) ([]models.Location, error) {
	locations := []models.Location{}
	query := r.Repository.GoquDBWrapper.
		Select("id", "name").
		From("locations").
		Order(goqu.I("name").Asc(), goqu.I("id").Asc())
	if err := query.Executor().ScanStructsContext(ctx, &locations); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return locations, nil
}
