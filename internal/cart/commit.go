package cart

import (
	"context"
	"errors"
	"fmt"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomePartialFailure Outcome = "partial_failure"
	OutcomeTotalFailure   Outcome = "total_failure"
)

type ItemFailure struct {
	AssetID   string             `json:"asset_id"`
	Name      string             `json:"name"`
	Direction metadata.Direction `json:"direction"`
	Message   string             `json:"message"`
	Stale     bool               `json:"stale"`
}

// CommitResult describes one batch. Errors has one line per failed item, in
// staging order; Committed lists the asset ids that changed state.
type CommitResult struct {
	Success   bool          `json:"success"`
	Errors    []string      `json:"errors"`
	Failures  []ItemFailure `json:"failures,omitempty"`
	Committed []string      `json:"committed"`
}

func (r CommitResult) Outcome() Outcome {
	switch {
	case r.Success:
		return OutcomeSuccess
	case len(r.Committed) == 0:
		return OutcomeTotalFailure
	default:
		return OutcomePartialFailure
	}
}

// Recorder receives commit statistics.
type Recorder interface {
	ItemCommitted(direction metadata.Direction)
	ItemFailed(direction metadata.Direction, stale bool)
	BatchFinished(outcome Outcome, size int)
}

type nopRecorder struct{}

func (nopRecorder) ItemCommitted(metadata.Direction) {}
func (nopRecorder) ItemFailed(metadata.Direction, bool) {}
func (nopRecorder) BatchFinished(Outcome, int) {}

// Committer issues one state change per cart item. Assets are independent,
// so the unit of atomicity is the item and not the batch.
type Committer struct {
	changer  StateChanger
	recorder Recorder
	logger   *zap.Logger
}

func NewCommitter(changer StateChanger, logger *zap.Logger, recorder Recorder) *Committer {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Committer{
		changer:  changer,
		recorder: recorder,
		logger:   logger,
	}
}

// ProcessCart commits items in order. A failing item is recorded and the
// next one is attempted; items are not validated again here. The caller
// owns the store and decides what to remove afterwards.
func (c *Committer) ProcessCart(ctx context.Context, items []models.CartItem, performedBy models.Identity) CommitResult {
	result := CommitResult{
		Errors:    []string{},
		Committed: []string{},
	}

	for _, item := range items {
		err := c.changer.CommitOne(ctx, models.NewCommitRequest(item, performedBy))
		if err != nil {
			failure := newItemFailure(item, err)
			result.Failures = append(result.Failures, failure)
			result.Errors = append(result.Errors, failure.String())
			c.recorder.ItemFailed(item.Direction, failure.Stale)

			c.logger.Warn("Cart item commit failed",
				zap.String("asset_id", item.AssetID),
				zap.String("direction", item.Direction.String()),
				zap.Bool("stale", failure.Stale),
				zap.Error(err),
			)
			continue
		}

		result.Committed = append(result.Committed, item.AssetID)
		c.recorder.ItemCommitted(item.Direction)
	}

	result.Success = len(result.Failures) == 0
	c.recorder.BatchFinished(result.Outcome(), len(items))

	return result
}

func newItemFailure(item models.CartItem, err error) ItemFailure {
	var stale *custom_error.StaleStateError

	return ItemFailure{
		AssetID:   item.AssetID,
		Name:      item.Asset.DisplayName(),
		Direction: item.Direction,
		Message:   err.Error(),
		Stale:     errors.As(err, &stale),
	}
}

func (f ItemFailure) String() string {
	if f.Name == "" {
		return fmt.Sprintf("%s: %s", f.AssetID, f.Message)
	}
	return fmt.Sprintf("%s (%s): %s", f.Name, f.AssetID, f.Message)
}
