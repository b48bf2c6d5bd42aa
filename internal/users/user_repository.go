package users

import (
	"context"
	"fmt"
	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserRepository interface {
	PersistUser(ctx context.Context, req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func (r *userRepositoryImpl) PersistUser(ctx context.Context, req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	user := models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Fullname: req.Fullname,
		Role:     req.Role.String(),
	}

	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"id":            user.ID,
			"password_hash": string(hashedPassword),
			"username":      user.Username,
			"fullname":      user.Fullname,
			"role":          user.Role,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Duplicate username", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert User: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.Select("id", "username", "fullname", "role").
		From("users").
		Order(goqu.I("fullname").Asc(), goqu.I("username").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	return r.fetchUser(ctx, goqu.Ex{"id": id}, id)
}

func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.fetchUser(ctx, goqu.Ex{"username": username}, username)
}

func (r *userRepositoryImpl) fetchUser(ctx context.Context, condition goqu.Ex, ref string) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.Select("id", "username", "fullname", "password_hash", "role").
		From("users").
		Where(condition)

	found, err := query.Executor().ScanStructContext(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, &custom_error.NotFoundError{Resource: "user", ID: ref}
	}

	return &user, nil
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}
