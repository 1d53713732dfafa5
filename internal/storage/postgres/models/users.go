package models

import (
	"context"
	"errors"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/storage"
	"movieapi/proj/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, email, password_hash, first_name, last_name, created_at"

type UserModel struct {
	DB *pgxpool.Pool
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, postgres.AsStorageErr(err, "users")
	}
	return &created, nil
}

func (m *UserModel) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.getBy(ctx, "id", id)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getBy(ctx, "email", email)
}

func (m *UserModel) getBy(ctx context.Context, column string, value any) (*models.User, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
