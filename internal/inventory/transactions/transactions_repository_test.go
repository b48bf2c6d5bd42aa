package transactions

import (
	"context"
	"database/sql"
	"inventory/internal/database"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var operator = models.Identity{ID: "u-1", Name: "Operator", Role: roles.Moderator}

func setupRepository(t *testing.T) (*TransactionsRepository, *sql.DB) {
	t.Helper()

	db, err := database.NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		INSERT INTO item_categories (id, label) VALUES ('cat-cam', 'Cameras');
		INSERT INTO items (id, name, item_category_id, status) VALUES
			('a-1', 'Sony A7', 'cat-cam', 'AVAILABLE'),
			('a-2', 'Canon R5', 'cat-cam', 'CHECKED_OUT'),
			('a-3', 'Nikon Z6', 'cat-cam', 'IN_MAINTENANCE');
	`)
	require.NoError(t, err)

	return NewRepository(repository.NewRepositoryWithDialect(db, repository.DialectSQLite)), db
}

func assetStatus(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM items WHERE id = ?", id).Scan(&status))
	return status
}

func countTransactions(t *testing.T, db *sql.DB, where string, args ...interface{}) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM asset_transactions WHERE "+where, args...).Scan(&count))
	return count
}

func strPtr(s string) *string {
	return &s
}

func TestApplyTransition_CheckOut(t *testing.T) {
	repo, db := setupRepository(t)

	err := repo.ApplyTransition(context.Background(), models.CommitRequest{
		AssetID:        "a-1",
		Direction:      metadata.DirectionCheckOut,
		ExpectedStatus: metadata.StatusAvailable,
		Metadata: models.CommitMetadata{
			AssignedUserID:     strPtr("u-2"),
			AssignedUserName:   strPtr("Jo"),
			ExpectedReturnDate: strPtr("2025-01-01"),
			Notes:              strPtr("stage B"),
		},
		PerformedBy: operator,
	})

	require.NoError(t, err)
	assert.Equal(t, "CHECKED_OUT", assetStatus(t, db, "a-1"))

	var assignee, name, notes, performer, returnDate string
	err = db.QueryRow(`
		SELECT assigned_user_id, assigned_user_name, notes, performed_by_id, CAST(expected_return_date AS TEXT)
		FROM asset_transactions WHERE item_id = 'a-1' AND direction = 'CHECK_OUT'`,
	).Scan(&assignee, &name, &notes, &performer, &returnDate)
	require.NoError(t, err)
	assert.Equal(t, "u-2", assignee)
	assert.Equal(t, "Jo", name)
	assert.Equal(t, "stage B", notes)
	assert.Equal(t, "u-1", performer)
	assert.Equal(t, "2025-01-01", returnDate)
}

func TestApplyTransition_CheckInClosesOpenCheckOut(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.ApplyTransition(ctx, models.CommitRequest{
		AssetID: "a-1", Direction: metadata.DirectionCheckOut, PerformedBy: operator,
	}))
	require.Equal(t, 1, countTransactions(t, db, "item_id = 'a-1' AND closed_at IS NULL"))

	err := repo.ApplyTransition(ctx, models.CommitRequest{
		AssetID: "a-1", Direction: metadata.DirectionCheckIn, PerformedBy: operator,
	})

	require.NoError(t, err)
	assert.Equal(t, "AVAILABLE", assetStatus(t, db, "a-1"))
	assert.Equal(t, 1, countTransactions(t, db, "item_id = 'a-1' AND direction = 'CHECK_OUT' AND closed_at IS NOT NULL AND closed_by_id = 'u-1'"))
	assert.Equal(t, 1, countTransactions(t, db, "item_id = 'a-1' AND direction = 'CHECK_IN'"))
}

func TestApplyTransition_StaleState(t *testing.T) {
	repo, db := setupRepository(t)

	tests := []struct {
		name     string
		assetID  string
		dir      metadata.Direction
		expected metadata.AssetStatus
		actual   metadata.AssetStatus
	}{
		{"check out of checked out asset", "a-2", metadata.DirectionCheckOut, metadata.StatusAvailable, metadata.StatusCheckedOut},
		{"check in of available asset", "a-1", metadata.DirectionCheckIn, metadata.StatusCheckedOut, metadata.StatusAvailable},
		{"check out of asset in maintenance", "a-3", metadata.DirectionCheckOut, metadata.StatusAvailable, metadata.StatusInMaintenance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.ApplyTransition(context.Background(), models.CommitRequest{
				AssetID:   tt.assetID,
				Direction: tt.dir,
			})

			var stale *custom_error.StaleStateError
			require.ErrorAs(t, err, &stale)
			assert.Equal(t, tt.expected, stale.Expected)
			assert.Equal(t, tt.actual, stale.Actual)
			assert.Equal(t, string(tt.actual), assetStatus(t, db, tt.assetID))
		})
	}

	assert.Equal(t, 0, countTransactions(t, db, "1 = 1"))
}

func TestApplyTransition_UnknownAsset(t *testing.T) {
	repo, _ := setupRepository(t)

	err := repo.ApplyTransition(context.Background(), models.CommitRequest{
		AssetID:   "missing",
		Direction: metadata.DirectionCheckOut,
	})

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
