// Package inmemory implements the movie and user stores on process memory.
// It is used by tests and by the "memory" storage driver for local runs.
package inmemory

import (
	"context"
	"movieapi/proj/internal/domain/models"
	"movieapi/proj/internal/storage"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, &storage.ConflictError{Field: "email"}
		}
	}
	created := *user
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	s.users[created.ID] = created
	return &created, nil
}

func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

type MovieStore struct {
	mu     sync.RWMutex
	movies map[uuid.UUID]models.Movie
	order  []uuid.UUID
}

func NewMovieStore() *MovieStore {
	return &MovieStore{movies: make(map[uuid.UUID]models.Movie)}
}

func copyMovie(m models.Movie) models.Movie {
	m.Actors = slices.Clone(m.Actors)
	return m
}

func (s *MovieStore) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := copyMovie(*movie)
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	s.movies[created.ID] = created
	s.order = append(s.order, created.ID)
	out := copyMovie(created)
	return &out, nil
}

func (s *MovieStore) Get(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := copyMovie(m)
	return &out, nil
}

func (s *MovieStore) List(ctx context.Context) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]models.Movie, 0, len(s.order))
	for _, id := range s.order {
		movies = append(movies, copyMovie(s.movies[id]))
	}
	return movies, nil
}

func (s *MovieStore) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.movies[movie.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	updated := copyMovie(*movie)
	updated.Owner = current.Owner
	updated.CreatedAt = current.CreatedAt
	s.movies[movie.ID] = updated
	out := copyMovie(updated)
	return &out, nil
}

func (s *MovieStore) Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(s.movies, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool { return other == id })
	return &m, nil
}
