package cart

import (
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

// Store is the ordered staging buffer of one cart. It is not safe for
// concurrent use; Session serialises access to it.
type Store struct {
	items   []models.CartItem
	version uint64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) CanAddItem(asset models.AssetSnapshot, direction metadata.Direction) Verdict {
	return CanAdd(s.items, asset, direction)
}

// AddItem stages the asset if CanAddItem accepts it. The reason for a
// rejection has to be taken from CanAddItem.
func (s *Store) AddItem(asset models.AssetSnapshot, direction metadata.Direction) bool {
	if !s.CanAddItem(asset, direction).OK {
		return false
	}

	s.items = append(s.items, models.CartItem{
		AssetID:   asset.ID,
		Direction: direction,
		Asset:     asset,
	})
	s.version++

	return true
}

func (s *Store) RemoveItem(assetID string) {
	i := s.indexOf(assetID)
	if i < 0 {
		return
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.version++
}

func (s *Store) UpdateItem(assetID string, patch models.CartItemPatch) {
	i := s.indexOf(assetID)
	if i < 0 || patch.IsEmpty() {
		return
	}

	patch.Apply(&s.items[i])
	s.version++
}

func (s *Store) ClearCart() {
	if len(s.items) == 0 {
		return
	}

	s.items = nil
	s.version++
}

func (s *Store) Has(assetID string) bool {
	return s.indexOf(assetID) >= 0
}

func (s *Store) Item(assetID string) (models.CartItem, bool) {
	i := s.indexOf(assetID)
	if i < 0 {
		return models.CartItem{}, false
	}
	return s.items[i], true
}

// Items returns a copy of the staged items in insertion order.
func (s *Store) Items() []models.CartItem {
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) GetCheckOutItems() []models.CartItem {
	return s.filter(metadata.DirectionCheckOut)
}

func (s *Store) GetCheckInItems() []models.CartItem {
	return s.filter(metadata.DirectionCheckIn)
}

func (s *Store) GetItemCount() int {
	return len(s.items)
}

// Version changes on every mutation that changed the contents.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) filter(direction metadata.Direction) []models.CartItem {
	items := make([]models.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Direction == direction {
			items = append(items, item)
		}
	}
	return items
}

func (s *Store) indexOf(assetID string) int {
	for i, item := range s.items {
		if item.AssetID == assetID {
			return i
		}
	}
	return -1
}
