package assets

import (
	"context"
	"fmt"
	"strings"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// Search text is matched literally, so LIKE wildcards typed by the user are escaped.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) Get(ctx context.Context, id string) (*models.AssetSnapshot, error) {
	return r.fetchFlatAssetByCondition(ctx, goqu.Ex{"i.id": id}, id)
}

// FindByPyrCode expects the canonical form, e.g. PYR-L12.
func (r *AssetsRepository) FindByPyrCode(ctx context.Context, pyrCode string) (*models.AssetSnapshot, error) {
	return r.fetchFlatAssetByCondition(ctx, goqu.Ex{"i.pyr_code": pyrCode}, pyrCode)
}

// Search lists assets matching every given filter. Text is matched against
// name, serial number and pyr code.
func (r *AssetsRepository) Search(ctx context.Context, query models.AssetQuery) ([]models.AssetSnapshot, error) {
	aliases := map[string]string{
		"category_id": "i.item_category_id",
		"status":      "i.status",
	}

	conditions := repository.NewQueryBuilder()
	if query.CategoryID != "" {
		conditions.AddCondition("category_id", query.CategoryID)
	}
	if query.Status != "" {
		conditions.AddCondition("status", string(query.Status))
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	dataset := r.getAssetQuery().
		Order(goqu.I("i.id").Asc()).
		Limit(uint(limit))

	if filters := conditions.BuildConditions(aliases); len(filters) > 0 {
		dataset = dataset.Where(filters)
	}

	if query.Text != "" {
		pattern := "%" + likeEscaper.Replace(query.Text) + "%"
		dataset = dataset.Where(goqu.Or(
			r.containsText("i.name", pattern),
			r.containsText("i.item_serial", pattern),
			r.containsText("i.pyr_code", pattern),
		))
	}

	var flatAssets []models.FlatAssetRecord
	if err := dataset.Executor().ScanStructsContext(ctx, &flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.AssetSnapshot, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		asset, err := flatAsset.TransformToAsset()
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func (r *AssetsRepository) fetchFlatAssetByCondition(ctx context.Context, condition goqu.Expression, ref string) (*models.AssetSnapshot, error) {
	query := r.getAssetQuery().Where(condition)

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStructContext(ctx, &flatAsset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, &custom_error.NotFoundError{Resource: "asset", ID: ref}
	}

	asset, err := flatAsset.TransformToAsset()
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("i.id").As("asset_id"),
		goqu.I("i.name").As("asset_name"),
		goqu.I("i.item_serial").As("item_serial"),
		goqu.I("i.status").As("status"),
		goqu.I("i.pyr_code").As("pyr_code"),
		goqu.I("i.current_value").As("current_value"),
		goqu.I("i.purchase_price").As("purchase_price"),
		goqu.I("i.image_url").As("image_url"),
		goqu.I("l.id").As("location_id"),
		goqu.I("l.name").As("location_name"),
		goqu.I("c.id").As("category_id"),
		goqu.I("c.type").As("category_type"),
		goqu.I("c.label").As("category_label"),
		goqu.I("c.pyr_id").As("category_pyr_id"),
	).
		From(goqu.T("items").As("i")).
		Join(
			goqu.T("item_categories").As("c"),
			goqu.On(goqu.Ex{"i.item_category_id": goqu.I("c.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"i.location_id": goqu.I("l.id")}),
		)
}

// containsText is a case-insensitive LIKE with an explicit escape character.
// SQLite has no ILIKE and its LIKE is already case-insensitive.
func (r *AssetsRepository) containsText(column, pattern string) exp.Expression {
	operator := "ILIKE"
	if r.repository.GoquDBWrapper.Dialect() == repository.DialectSQLite {
		operator = "LIKE"
	}
	return goqu.L("? "+operator+" ? ESCAPE '\\'", goqu.I(column), pattern)
}
