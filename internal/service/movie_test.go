package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"

	"videoclub/internal/models"
	"videoclub/internal/storage"
)

// movieFakeStorage records which search path was taken.
type movieFakeStorage struct {
	fakeStorage
	listCalled   bool
	searchCalled bool
	lastFilter   models.MovieFilter
}

func (f *movieFakeStorage) ListMovies(context.Context) ([]models.Movie, error) {
	f.listCalled = true
	return []models.Movie{{Title: "Heat"}}, nil
}

func (f *movieFakeStorage) SearchMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	f.searchCalled = true
	f.lastFilter = filter
	return nil, nil
}

func TestSearchMovies_EmptyFilterFallsBackToList(t *testing.T) {
	t.Parallel()

	st := &movieFakeStorage{}
	s := NewMovieService(st)

	movies, err := s.SearchMovies(context.Background(), models.MovieFilter{})
	if err != nil {
		t.Fatalf("SearchMovies error: %v", err)
	}
	if !st.listCalled || st.searchCalled {
		t.Fatalf("empty filter must list, not search: list=%v search=%v", st.listCalled, st.searchCalled)
	}
	if len(movies) != 1 {
		t.Fatalf("unexpected result: %+v", movies)
	}
}

func TestSearchMovies_FilterPassedThrough(t *testing.T) {
	t.Parallel()

	st := &movieFakeStorage{}
	s := NewMovieService(st)

	filter := models.MovieFilter{Title: "alien", Year: 1986}
	if _, err := s.SearchMovies(context.Background(), filter); err != nil {
		t.Fatalf("SearchMovies error: %v", err)
	}
	if !st.searchCalled || st.lastFilter != filter {
		t.Fatalf("filter not passed through: %+v", st.lastFilter)
	}
}

func TestGetMovie_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	s := NewMovieService(newFakeStorage())

	id, err := uuid.NewV4()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}

	if _, err := s.GetMovie(context.Background(), id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateMovie_KeepsRequestedID(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	s := NewMovieService(st)

	id, err := uuid.NewV4()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}

	updated, err := s.UpdateMovie(context.Background(), id, models.Movie{Title: "Heat"})
	if err != nil {
		t.Fatalf("UpdateMovie error: %v", err)
	}
	if updated.ID != id {
		t.Fatalf("id not preserved: got %s want %s", updated.ID, id)
	}
}
