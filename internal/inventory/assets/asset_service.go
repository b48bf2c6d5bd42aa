package assets

import (
	"context"
	"errors"
	"fmt"
	"inventory/internal/cart"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

var ErrInvalidReference = errors.New("invalid asset reference")

type AssetRef struct {
	AssetID string `json:"asset_id"`
	PyrCode string `json:"pyr_code"`
}

type pyrCodeFinder interface {
	cart.AssetLookup
	FindByPyrCode(ctx context.Context, pyrCode string) (*models.AssetSnapshot, error)
}

// AssetService resolves what a user typed or scanned into a snapshot.
type AssetService struct {
	assetsRepo pyrCodeFinder
}

func NewAssetService(assetsRepo pyrCodeFinder) *AssetService {
	return &AssetService{assetsRepo: assetsRepo}
}

func (s *AssetService) Resolve(ctx context.Context, ref AssetRef) (*models.AssetSnapshot, error) {
	if ref.AssetID != "" {
		return s.assetsRepo.Get(ctx, ref.AssetID)
	}
	if ref.PyrCode == "" {
		return nil, fmt.Errorf("%w: asset_id or pyr_code is required", ErrInvalidReference)
	}

	code, err := metadata.ParsePyrCode(ref.PyrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	return s.assetsRepo.FindByPyrCode(ctx, code.GeneratePyrCode())
}

func (s *AssetService) Search(ctx context.Context, query models.AssetQuery) ([]models.AssetSnapshot, error) {
	return s.assetsRepo.Search(ctx, query)
}

func (s *AssetService) Get(ctx context.Context, id string) (*models.AssetSnapshot, error) {
	return s.assetsRepo.Get(ctx, id)
}
