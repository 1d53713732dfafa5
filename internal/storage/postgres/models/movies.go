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

const movieColumns = "id, user_id, title, description, release_date, rating, gender, actors, image_url, created_at"

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) Get(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (user_id, title, description, release_date, rating, gender, actors, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+movieColumns,
		movie.Owner,
		movie.Title,
		movie.Description,
		movie.ReleaseDate,
		movie.Rating,
		movie.Gender,
		movie.Actors,
		movie.ImageURL,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, postgres.AsStorageErr(err, "movies")
	}
	return &created, nil
}

func (m *MovieModel) List(ctx context.Context) ([]models.Movie, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY created_at, id")
	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE movies SET title = $1, description = $2, release_date = $3, rating = $4, gender = $5, actors = $6, image_url = $7
		WHERE id = $8 RETURNING `+movieColumns,
		movie.Title,
		movie.Description,
		movie.ReleaseDate,
		movie.Rating,
		movie.Gender,
		movie.Actors,
		movie.ImageURL,
		movie.ID,
	)
	updatedMovie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, postgres.AsStorageErr(err, "movies")
	}
	return &updatedMovie, nil
}

// Delete removes the movie and returns the row as it was before deletion.
func (m *MovieModel) Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	rows, _ := m.DB.Query(ctx, "DELETE FROM movies WHERE id = $1 RETURNING "+movieColumns, id)
	deleted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}
