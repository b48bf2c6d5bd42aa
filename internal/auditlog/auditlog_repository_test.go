package auditlog

import (
	"context"
	"inventory/internal/database"
	"inventory/internal/repository"
	"inventory/pkg/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistLog(t *testing.T) {
	db, err := database.NewTestDatabase()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(repository.NewRepositoryWithDialect(db, repository.DialectSQLite))
	ctx := context.Background()
	userID := "u-1"

	err = repo.PersistLog(ctx, models.AuditLog{
		ResourceID:   "a-1",
		ResourceType: "asset",
		Action:       "check_out",
		UserID:       &userID,
	}, map[string]string{"assigned_user_id": "u-2"})
	require.NoError(t, err)

	count, err := repo.CountResourceLog(ctx, "asset", "a-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var data, storedUser string
	err = db.QueryRow("SELECT data, user_id FROM audit_logs WHERE resource_id = 'a-1'").Scan(&data, &storedUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"assigned_user_id":"u-2"}`, data)
	assert.Equal(t, "u-1", storedUser)
}
