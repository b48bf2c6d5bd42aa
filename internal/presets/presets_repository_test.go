package presets

import (
	"context"
	"inventory/internal/database"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *PresetsRepository {
	t.Helper()

	db, err := database.NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		INSERT INTO presets (id, name, direction) VALUES
			('p-2', 'Interview kit', 'CHECK_OUT'),
			('p-1', 'Audio return', 'CHECK_IN'),
			('p-3', 'Empty', 'CHECK_OUT');
		INSERT INTO preset_slots (preset_id, id, position, label, item_id, item_category_id, quantity, is_required) VALUES
			('p-2', 'mics', 2, 'Microphones', NULL, 'cat-mic', 2, TRUE),
			('p-2', 'camera', 1, 'Main camera', 'a-1', 'cat-cam', 1, TRUE),
			('p-2', 'light', 3, NULL, NULL, 'cat-light', 1, FALSE),
			('p-1', 'recorder', 1, NULL, NULL, 'cat-rec', 1, TRUE);
	`)
	require.NoError(t, err)

	return NewRepository(repository.NewRepositoryWithDialect(db, repository.DialectSQLite))
}

func TestList(t *testing.T) {
	repo := setupRepository(t)

	definitions, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, definitions, 3)
	assert.Equal(t, []string{"Audio return", "Empty", "Interview kit"},
		[]string{definitions[0].Name, definitions[1].Name, definitions[2].Name})

	assert.Equal(t, metadata.DirectionCheckIn, definitions[0].Direction)
	assert.Empty(t, definitions[1].Slots)

	kit := definitions[2]
	require.Len(t, kit.Slots, 3)
	assert.Equal(t, "camera", kit.Slots[0].ID)
	assert.True(t, kit.Slots[0].IsAssetSlot())
	assert.Equal(t, "Main camera", kit.Slots[0].Label)
	assert.Equal(t, "mics", kit.Slots[1].ID)
	assert.Equal(t, 2, kit.Slots[1].Quantity)
	assert.Equal(t, "cat-mic", kit.Slots[1].Category())
	assert.False(t, kit.Slots[2].IsRequired)
}

func TestGet(t *testing.T) {
	repo := setupRepository(t)

	definition, err := repo.Get(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "Audio return", definition.Name)
	require.Len(t, definition.Slots, 1)
	assert.Equal(t, "recorder", definition.Slots[0].ID)
}

func TestGet_NotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.Get(context.Background(), "p-404")

	var notFound *custom_error.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "preset", notFound.Resource)
}
