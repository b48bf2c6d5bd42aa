package cart

import (
	"context"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockStateChanger struct {
	mock.Mock
}

func (m *MockStateChanger) CommitOne(ctx context.Context, req models.CommitRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockAssetLookup struct {
	mock.Mock
}

func (m *MockAssetLookup) Search(ctx context.Context, query models.AssetQuery) ([]models.AssetSnapshot, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssetSnapshot), args.Error(1)
}

func (m *MockAssetLookup) Get(ctx context.Context, assetID string) (*models.AssetSnapshot, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetSnapshot), args.Error(1)
}

// funcChanger lets a test run code while a commit is in flight.
type funcChanger func(req models.CommitRequest) error

func (f funcChanger) CommitOne(_ context.Context, req models.CommitRequest) error {
	return f(req)
}

func newAsset(id string, status metadata.AssetStatus, category string) models.AssetSnapshot {
	return models.AssetSnapshot{
		ID:       id,
		Name:     "Asset " + id,
		Status:   status,
		Category: models.ItemCategory{ID: category, Label: category},
	}
}

func strPtr(s string) *string {
	return &s
}

func ids(items []models.CartItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.AssetID)
	}
	return out
}

func assetIDMatcher(assetID string) interface{} {
	return mock.MatchedBy(func(req models.CommitRequest) bool {
		return req.AssetID == assetID
	})
}
