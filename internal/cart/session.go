package cart

import (
	"context"
	"errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"sync"

	"go.uber.org/zap"
)

// Session owns the cart of one user. All mutations go through it; the lock
// only serialises callers and is never held across backend calls.
type Session struct {
	mu         sync.Mutex
	identity   models.Identity
	store      *Store
	committer  *Committer
	resolver   *Resolver
	logger     *zap.Logger
	committing bool
}

func NewSession(identity models.Identity, committer *Committer, resolver *Resolver, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		identity:  identity,
		store:     NewStore(),
		committer: committer,
		resolver:  resolver,
		logger:    logger.With(zap.String("user_id", identity.ID)),
	}
}

func (s *Session) Identity() models.Identity {
	return s.identity
}

func (s *Session) CanAddItem(asset models.AssetSnapshot, direction metadata.Direction) Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.CanAddItem(asset, direction)
}

// AddItem stages the asset. New check-outs are assigned to the current user
// until somebody else is named.
func (s *Session) AddItem(asset models.AssetSnapshot, direction metadata.Direction) error {
	return s.Stage(asset, direction, models.CartItemPatch{})
}

// Stage adds the asset and applies patch on top of the default assignee in
// one step, so a commit never sees the item without its metadata.
func (s *Session) Stage(asset models.AssetSnapshot, direction metadata.Direction, patch models.CartItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInProgress
	}

	if verdict := s.store.CanAddItem(asset, direction); !verdict.OK {
		return verdict.Err(asset.ID)
	}
	s.store.AddItem(asset, direction)

	if direction == metadata.DirectionCheckOut && s.identity.ID != "" {
		id, name := s.identity.ID, s.identity.Name
		s.store.UpdateItem(asset.ID, models.CartItemPatch{
			AssignedUserID:   &id,
			AssignedUserName: &name,
		})
	}
	if !patch.IsEmpty() {
		s.store.UpdateItem(asset.ID, patch)
	}

	return nil
}

func (s *Session) RemoveItem(assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInProgress
	}
	s.store.RemoveItem(assetID)

	return nil
}

func (s *Session) UpdateItem(assetID string, patch models.CartItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInProgress
	}
	s.store.UpdateItem(assetID, patch)

	return nil
}

func (s *Session) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInProgress
	}
	s.store.ClearCart()

	return nil
}

func (s *Session) Item(assetID string) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Item(assetID)
}

func (s *Session) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Items()
}

func (s *Session) GetCheckOutItems() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.GetCheckOutItems()
}

func (s *Session) GetCheckInItems() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.GetCheckInItems()
}

func (s *Session) GetItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.GetItemCount()
}

func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Version()
}

// Snapshot returns the staged items together with the version they belong to.
func (s *Session) Snapshot() ([]models.CartItem, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Items(), s.store.Version()
}

func (s *Session) Committing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.committing
}

// ProcessCart commits the staged items without touching the store.
func (s *Session) ProcessCart(ctx context.Context) (CommitResult, error) {
	return s.commit(ctx, false)
}

// Checkout commits the staged items and settles the store: a clean result
// empties it, otherwise only the committed items are dropped so a retry
// never submits them twice.
func (s *Session) Checkout(ctx context.Context) (CommitResult, error) {
	return s.commit(ctx, true)
}

func (s *Session) commit(ctx context.Context, settle bool) (CommitResult, error) {
	s.mu.Lock()
	if s.committing {
		s.mu.Unlock()
		return CommitResult{}, ErrCommitInProgress
	}
	s.committing = true
	items := s.store.Items()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.committing = false
		s.mu.Unlock()
	}()

	// A started batch runs over every item even if the caller goes away.
	result := s.committer.ProcessCart(context.WithoutCancel(ctx), items, s.identity)

	s.logger.Info("Cart committed",
		zap.String("outcome", string(result.Outcome())),
		zap.Int("items", len(items)),
		zap.Int("failed", len(result.Failures)),
	)

	if settle {
		s.mu.Lock()
		if result.Success {
			s.store.ClearCart()
		} else {
			for _, assetID := range result.Committed {
				s.store.RemoveItem(assetID)
			}
		}
		s.mu.Unlock()
	}

	return result, nil
}

func (s *Session) MatchPresets(catalog []models.PresetDefinition) []models.PresetMatchResult {
	return MatchPresets(s.Items(), catalog)
}

func (s *Session) MatchPreset(preset models.PresetDefinition) models.PresetMatchResult {
	return MatchPreset(s.Items(), preset)
}

func (s *Session) ProposeSubstitutes(ctx context.Context, direction metadata.Direction, missing []models.MissingSlot) (map[string][]models.AssetSnapshot, error) {
	return s.resolver.ProposeSubstitutes(ctx, direction, missing, s.Items())
}

// ConfirmSubstitutions stages the chosen replacement assets exactly as if
// they had been scanned: every one of them passes CanAddItem first.
func (s *Session) ConfirmSubstitutions(ctx context.Context, preset models.PresetDefinition, selections map[string]string) ([]SubstitutionOutcome, error) {
	if s.Committing() {
		return nil, ErrCommitInProgress
	}

	direction := preset.Direction
	if direction == "" {
		direction = metadata.DirectionCheckOut
	}

	resolved := s.resolver.resolveSelections(ctx, preset, selections)
	outcomes := make([]SubstitutionOutcome, 0, len(resolved))
	for _, selection := range resolved {
		outcome := SubstitutionOutcome{SlotID: selection.slotID, AssetID: selection.assetID}

		if selection.asset == nil {
			outcome.Reason = selection.reason
			outcomes = append(outcomes, outcome)
			continue
		}

		err := s.AddItem(*selection.asset, direction)
		var rejected *StageRejectedError
		switch {
		case err == nil:
			outcome.Added = true
		case errors.As(err, &rejected):
			outcome.Reason = rejected.Reason
		default:
			outcome.Reason = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
