package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"inventory/internal/cart"
	"inventory/internal/inventory/assets"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"inventory/pkg/security"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	regularUser = models.Identity{ID: "u-1", Name: "Alex", Role: roles.User}
	moderator   = models.Identity{ID: "u-2", Name: "Sam", Role: roles.Moderator}
)

type MockAssetResolver struct {
	mock.Mock
}

func (m *MockAssetResolver) Resolve(ctx context.Context, ref assets.AssetRef) (*models.AssetSnapshot, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetSnapshot), args.Error(1)
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

type MockPresetCatalog struct {
	mock.Mock
}

func (m *MockPresetCatalog) List(ctx context.Context) ([]models.PresetDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PresetDefinition), args.Error(1)
}

func (m *MockPresetCatalog) Get(ctx context.Context, presetID string) (*models.PresetDefinition, error) {
	args := m.Called(ctx, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PresetDefinition), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockStateChanger struct {
	mock.Mock
}

func (m *MockStateChanger) CommitOne(ctx context.Context, req models.CommitRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type testEnv struct {
	sessions *Sessions
	handler  *CartHandler
	resolver *MockAssetResolver
	lookup   *MockAssetLookup
	catalog  *MockPresetCatalog
	users    *MockUserDirectory
	changer  *MockStateChanger
}

func newTestEnv() *testEnv {
	env := &testEnv{
		resolver: new(MockAssetResolver),
		lookup:   new(MockAssetLookup),
		catalog:  new(MockPresetCatalog),
		users:    new(MockUserDirectory),
		changer:  new(MockStateChanger),
	}
	env.sessions = NewSessions(cart.NewCommitter(env.changer, nil, nil), cart.NewResolver(env.lookup, 2), nil)
	env.handler = NewCartHandler(env.sessions, env.resolver, env.catalog, env.users, nil)
	return env
}

// router serves the cart as the given user. A zero identity leaves the
// request unauthenticated.
func (e *testEnv) router(identity models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if identity.ID != "" {
		router.Use(func(c *gin.Context) {
			security.SetIdentity(c, identity)
			c.Next()
		})
	}
	e.handler.RegisterRoutes(router)
	return router
}

func (e *testEnv) stage(t *testing.T, identity models.Identity, asset models.AssetSnapshot, direction metadata.Direction) {
	t.Helper()
	require.NoError(t, e.sessions.For(identity).AddItem(asset, direction))
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newAsset(id string, status metadata.AssetStatus, category string) models.AssetSnapshot {
	return models.AssetSnapshot{
		ID:       id,
		Name:     "Asset " + id,
		Status:   status,
		Category: models.ItemCategory{ID: category, Label: category},
	}
}

func assetIDMatcher(assetID string) interface{} {
	return mock.MatchedBy(func(req models.CommitRequest) bool {
		return req.AssetID == assetID
	})
}

func strPtr(s string) *string {
	return &s
}
