package models

import (
	"inventory/pkg/metadata"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestParseAssetSnapshot(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		expectedErr string
		category    ItemCategory
	}{
		{
			name:     "nested category",
			payload:  `{"id":"a-1","name":"Sony A7","status":"AVAILABLE","category":{"id":"cat-cam","label":"Cameras"},"pyrcode":"PYR-C1"}`,
			category: ItemCategory{ID: "cat-cam", Label: "Cameras"},
		},
		{
			name:     "flat category id",
			payload:  `{"id":"a-1","status":"checked_out","category_id":"cat-cam"}`,
			category: ItemCategory{ID: "cat-cam"},
		},
		{name: "missing id", payload: `{"status":"AVAILABLE","category_id":"c"}`, expectedErr: "asset id is required"},
		{name: "unknown status", payload: `{"id":"a-1","status":"LENT","category_id":"c"}`, expectedErr: "a-1"},
		{name: "missing category", payload: `{"id":"a-1","status":"AVAILABLE"}`, expectedErr: "category is required"},
		{name: "not json", payload: `[`, expectedErr: "failed to unmarshal asset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := ParseAssetSnapshot([]byte(tt.payload))

			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a-1", asset.ID)
			assert.Equal(t, tt.category, asset.Category)
			assert.True(t, asset.Status.IsValid())
		})
	}
}

func TestCartItemPatch_Apply(t *testing.T) {
	item := CartItem{
		AssetID:          "a-1",
		Direction:        metadata.DirectionCheckOut,
		AssignedUserID:   strPtr("u-1"),
		AssignedUserName: strPtr("Alex"),
	}

	CartItemPatch{ExpectedReturnDate: strPtr("2025-01-01"), Notes: strPtr("fragile")}.Apply(&item)
	assert.Equal(t, "u-1", *item.AssignedUserID)
	assert.Equal(t, "2025-01-01", *item.ExpectedReturnDate)
	assert.Equal(t, "fragile", *item.Notes)

	CartItemPatch{AssignedUserID: strPtr(""), AssignedUserName: strPtr(""), Notes: strPtr("")}.Apply(&item)
	assert.Nil(t, item.AssignedUserID)
	assert.Nil(t, item.AssignedUserName)
	assert.Nil(t, item.Notes)
	assert.Equal(t, "2025-01-01", *item.ExpectedReturnDate)
}

func TestCartItemPatch_CheckInIgnoresLoanFields(t *testing.T) {
	item := CartItem{AssetID: "a-1", Direction: metadata.DirectionCheckIn}

	CartItemPatch{AssignedUserID: strPtr("u-2"), ExpectedReturnDate: strPtr("2025-01-01"), Notes: strPtr("scratched")}.Apply(&item)

	assert.Nil(t, item.AssignedUserID)
	assert.Nil(t, item.ExpectedReturnDate)
	assert.Equal(t, "scratched", *item.Notes)
	assert.True(t, CartItemPatch{}.IsEmpty())
}

func TestParseReturnDate(t *testing.T) {
	date, err := ParseReturnDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", date)

	date, err = ParseReturnDate("")
	require.NoError(t, err)
	assert.Empty(t, date)

	_, err = ParseReturnDate("2025-02-30")
	assert.Error(t, err)
	_, err = ParseReturnDate("01/01/2025")
	assert.Error(t, err)
}

func TestPresetDefinition_Normalize(t *testing.T) {
	preset := PresetDefinition{
		ID: "p-1",
		Slots: []PresetSlot{
			{CategoryID: strPtr("camera")},
			{ID: "lens", AssetID: strPtr("a-9")},
		},
	}

	require.NoError(t, preset.Normalize())
	assert.Equal(t, metadata.DirectionCheckOut, preset.Direction)
	assert.Equal(t, "slot-1", preset.Slots[0].ID)
	assert.Equal(t, 1, preset.Slots[0].Quantity)
	assert.Equal(t, 1, preset.Slots[1].Need())

	slot, ok := preset.Slot("lens")
	assert.True(t, ok)
	assert.True(t, slot.IsAssetSlot())

	invalid := []PresetDefinition{
		{},
		{ID: "p-2", Direction: "LEND"},
		{ID: "p-3", Slots: []PresetSlot{{ID: "x", CategoryID: strPtr("c")}, {ID: "x", CategoryID: strPtr("c")}}},
		{ID: "p-4", Slots: []PresetSlot{{ID: "empty"}}},
	}
	for _, p := range invalid {
		assert.Error(t, p.Normalize(), p.ID)
	}
}

func TestCreateLogViews(t *testing.T) {
	asset := AssetSnapshot{ID: "a-1"}
	item := CartItem{AssetID: "a-2"}
	req := CommitRequest{AssetID: "a-3"}

	assert.Equal(t, AuditLog{ResourceID: "a-1", ResourceType: "asset"}, asset.CreateLogView())
	assert.Equal(t, AuditLog{ResourceID: "a-2", ResourceType: "asset"}, item.CreateLogView())
	assert.Equal(t, AuditLog{ResourceID: "a-3", ResourceType: "asset"}, req.CreateLogView())
}
