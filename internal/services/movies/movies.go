package movies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"movieapi/proj/internal/domain/fields"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/storage"
	"slices"

	"github.com/google/uuid"
)

type MoviesStorage interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error)
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

type CreateMovieParams struct {
	Title       string
	Description string
	ReleaseDate fields.ReleaseDate
	Rating      int
	Gender      models.Gender
	Actors      []string
	ImageURL    string
}

// UpdateMovieParams holds a partial update, nil fields are left untouched.
type UpdateMovieParams struct {
	Title       *string
	Description *string
	ReleaseDate *fields.ReleaseDate
	Rating      *int
	Gender      *models.Gender
	Actors      []string
	ImageURL    *string
}

func (s *MovieService) Create(ctx context.Context, ownerID uuid.UUID, params CreateMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "owner", ownerID, "title", params.Title)
	movie, err := s.storage.Insert(ctx, &models.Movie{
		Owner:       ownerID,
		Title:       params.Title,
		Description: params.Description,
		ReleaseDate: params.ReleaseDate,
		Rating:      params.Rating,
		Gender:      params.Gender,
		Actors:      slices.Clone(params.Actors),
		ImageURL:    params.ImageURL,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("movie created", "id", movie.ID)
	return movie, nil
}

func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	const op = "movies.MovieService.List"
	movies, err := s.storage.List(ctx)
	if err != nil {
		s.log.Error(err.Error(), "op", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

// CheckOwner fails with ErrForbidden unless movieID exists and belongs to callerID.
func (s *MovieService) CheckOwner(ctx context.Context, callerID, movieID uuid.UUID) error {
	_, err := s.ownedMovie(ctx, callerID, movieID)
	return err
}

// ownedMovie merges "missing" and "owned by someone else" into ErrForbidden
// so callers cannot probe for other users' records.
func (s *MovieService) ownedMovie(ctx context.Context, callerID, movieID uuid.UUID) (*models.Movie, error) {
	const op = "movies.MovieService.ownedMovie"
	log := s.log.With("op", op, "id", movieID, "caller", callerID)
	movie, err := s.storage.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrForbidden
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if movie.Owner.String() != callerID.String() {
		log.Warn("caller does not own the movie", "owner", movie.Owner)
		return nil, ErrForbidden
	}
	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, movieID, callerID uuid.UUID, params UpdateMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", movieID)
	movie, err := s.ownedMovie(ctx, callerID, movieID)
	if err != nil {
		return nil, err
	}
	if params.Title != nil {
		movie.Title = *params.Title
	}
	if params.Description != nil {
		movie.Description = *params.Description
	}
	if params.ReleaseDate != nil {
		movie.ReleaseDate = *params.ReleaseDate
	}
	if params.Rating != nil {
		movie.Rating = *params.Rating
	}
	if params.Gender != nil {
		movie.Gender = *params.Gender
	}
	if params.Actors != nil {
		movie.Actors = slices.Clone(params.Actors)
	}
	if params.ImageURL != nil {
		movie.ImageURL = *params.ImageURL
	}
	updatedMovie, err := s.storage.Update(ctx, movie)
	if err != nil {
		// deleted between the ownership check and the write
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrForbidden
		}
		log.Error("Error updating movie: " + err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updatedMovie, nil
}

func (s *MovieService) Delete(ctx context.Context, movieID, callerID uuid.UUID) (*models.Movie, error) {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", movieID)
	if _, err := s.ownedMovie(ctx, callerID, movieID); err != nil {
		return nil, err
	}
	deleted, err := s.storage.Delete(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrForbidden
		}
		log.Error("Error deleting movie: " + err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("movie deleted")
	return deleted, nil
}
