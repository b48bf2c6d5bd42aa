package transactions

import (
	"context"
	"fmt"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type TransactionsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *TransactionsRepository {
	return &TransactionsRepository{repository: r}
}

// ApplyTransition moves the asset to the status implied by the direction and
// records the transaction. The update only matches while the asset still has
// the status the direction requires, so a concurrent change surfaces as
// StaleStateError instead of being overwritten.
func (r *TransactionsRepository) ApplyTransition(ctx context.Context, req models.CommitRequest) error {
	return r.repository.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		result, err := tx.Update("items").
			Set(goqu.Record{
				"status":     string(req.Direction.ResultingStatus()),
				"updated_at": goqu.L("CURRENT_TIMESTAMP"),
			}).
			Where(goqu.Ex{
				"id":     req.AssetID,
				"status": string(req.Direction.RequiredStatus()),
			}).
			Executor().
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to update asset status: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return r.explainMiss(ctx, tx, req)
		}

		if req.Direction == metadata.DirectionCheckIn {
			if err := r.closeOpenCheckOut(ctx, tx, req); err != nil {
				return err
			}
		}

		return r.insertTransaction(ctx, tx, req)
	})
}

func (r *TransactionsRepository) explainMiss(ctx context.Context, tx *goqu.TxDatabase, req models.CommitRequest) error {
	var status string
	found, err := tx.From("items").
		Select("status").
		Where(goqu.Ex{"id": req.AssetID}).
		Executor().
		ScanValContext(ctx, &status)
	if err != nil {
		return fmt.Errorf("failed to read asset status: %w", err)
	}
	if !found {
		return &custom_error.NotFoundError{Resource: "asset", ID: req.AssetID}
	}

	return &custom_error.StaleStateError{
		AssetID:  req.AssetID,
		Expected: req.Direction.RequiredStatus(),
		Actual:   metadata.AssetStatus(status),
	}
}

func (r *TransactionsRepository) closeOpenCheckOut(ctx context.Context, tx *goqu.TxDatabase, req models.CommitRequest) error {
	record := goqu.Record{"closed_at": goqu.L("CURRENT_TIMESTAMP")}
	if req.PerformedBy.ID != "" {
		record["closed_by_id"] = req.PerformedBy.ID
	}

	_, err := tx.Update("asset_transactions").
		Set(record).
		Where(goqu.Ex{
			"item_id":   req.AssetID,
			"direction": string(metadata.DirectionCheckOut),
			"closed_at": nil,
		}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to close check-out of asset %s: %w", req.AssetID, err)
	}

	return nil
}

func (r *TransactionsRepository) insertTransaction(ctx context.Context, tx *goqu.TxDatabase, req models.CommitRequest) error {
	record := goqu.Record{
		"id":        uuid.NewString(),
		"item_id":   req.AssetID,
		"direction": string(req.Direction),
	}
	setOptional(record, "assigned_user_id", req.Metadata.AssignedUserID)
	setOptional(record, "assigned_user_name", req.Metadata.AssignedUserName)
	setOptional(record, "expected_return_date", req.Metadata.ExpectedReturnDate)
	setOptional(record, "notes", req.Metadata.Notes)
	if req.PerformedBy.ID != "" {
		record["performed_by_id"] = req.PerformedBy.ID
	}

	_, err := tx.Insert("asset_transactions").
		Rows(record).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert asset transaction: %w", err)
	}

	return nil
}

func setOptional(record goqu.Record, column string, value *string) {
	if value != nil && *value != "" {
		record[column] = *value
	}
}
