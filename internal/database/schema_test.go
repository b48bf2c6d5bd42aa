package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestDatabase_AppliesSchema(t *testing.T) {
	db, err := NewTestDatabase()
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "item_categories", "locations", "items", "asset_transactions", "audit_logs", "presets", "preset_slots"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestNewTestDatabase_EnforcesStatusCheck(t *testing.T) {
	db, err := NewTestDatabase()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("INSERT INTO item_categories (id, label) VALUES ('c-1', 'Cameras')")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO items (id, item_category_id, status) VALUES ('a-1', 'c-1', 'LOST')")
	assert.Error(t, err)
}

func TestRunMigrations_RequiresURL(t *testing.T) {
	err := RunMigrations("", "", nil)
	assert.ErrorContains(t, err, "DATABASE_URL")
}
