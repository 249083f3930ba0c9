package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"

	"videoclub/internal/models"
	"videoclub/internal/storage"
)

type MovieService struct {
	storage storage.Storage
}

func NewMovieService(st storage.Storage) *MovieService {
	return &MovieService{
		storage: st,
	}
}

func (s *MovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	const op = "service.ListMovies"

	movies, err := s.storage.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return movies, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	return s.storage.GetMovieByID(ctx, id)
}

func (s *MovieService) CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	const op = "service.CreateMovie"

	created, err := s.storage.CreateMovie(ctx, movie)
	if err != nil {
		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// UpdateMovie replaces every mutable field of the stored record with the
// incoming values; id and created_at are preserved.
func (s *MovieService) UpdateMovie(ctx context.Context, id uuid.UUID, movie models.Movie) (models.Movie, error) {
	movie.ID = id
	return s.storage.UpdateMovie(ctx, movie)
}

func (s *MovieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	return s.storage.DeleteMovie(ctx, id)
}

func (s *MovieService) SearchMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	const op = "service.SearchMovies"

	if filter.Empty() {
		return s.ListMovies(ctx)
	}

	movies, err := s.storage.SearchMovies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return movies, nil
}
