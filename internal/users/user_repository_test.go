package users

import (
	"context"
	"inventory/internal/database"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, err := database.NewTestDatabase()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(repository.NewRepositoryWithDialect(db, repository.DialectSQLite))
	ctx := context.Background()

	created, err := repo.PersistUser(ctx, models.CreateUserRequest{
		Username: "alex",
		Fullname: "Alex Doe",
		Role:     roles.Moderator,
	}, []byte("hash"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	byID, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alex", byID.Username)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.Equal(t, "moderator", byID.Role)

	byName, err := repo.GetByUsername(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetByUsername(ctx, "ghost")
	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = repo.PersistUser(ctx, models.CreateUserRequest{Username: "alex", Role: roles.User}, []byte("x"))
	assert.Error(t, err)

	list, err := repo.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Empty(t, list[0].PasswordHash)
}
