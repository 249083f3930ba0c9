package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v4"

	"videoclub/internal/models"
)

const movieColumns = "id, title, description, genre, director, year_released, duration_minutes, rating, poster_url, created_at, updated_at"

func scanMovie(row pgx.Row) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Genre,
		&m.Director,
		&m.YearReleased,
		&m.DurationMinutes,
		&m.Rating,
		&m.PosterURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (p *PostgresStorage) ListMovies(ctx context.Context) ([]models.Movie, error) {
	const op = "storage.ListMovies"

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at;", movieColumns, moviesTable)

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s (rows): %w", op, err)
	}

	return movies, nil
}

func (p *PostgresStorage) GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	const op = "storage.GetMovieByID"

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id=$1;", movieColumns, moviesTable)

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	return movie, nil
}

func (p *PostgresStorage) CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	const op = "storage.CreateMovie"

	query := fmt.Sprintf(`INSERT INTO %s(title, description, genre, director, year_released, duration_minutes, rating, poster_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at;`, moviesTable)

	err := p.db.QueryRow(ctx, query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Director,
		movie.YearReleased,
		movie.DurationMinutes,
		movie.Rating,
		movie.PosterURL,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	return movie, nil
}

func (p *PostgresStorage) UpdateMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	const op = "storage.UpdateMovie"

	query := fmt.Sprintf(`UPDATE %s
	SET title=$1, description=$2, genre=$3, director=$4, year_released=$5, duration_minutes=$6, rating=$7, poster_url=$8, updated_at=now()
	WHERE id=$9 RETURNING created_at, updated_at;`, moviesTable)

	err := p.db.QueryRow(ctx, query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Director,
		movie.YearReleased,
		movie.DurationMinutes,
		movie.Rating,
		movie.PosterURL,
		movie.ID,
	).Scan(&movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	return movie, nil
}

func (p *PostgresStorage) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteMovie"

	query := fmt.Sprintf("DELETE FROM %s WHERE id=$1;", moviesTable)

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SearchMovies applies every supplied criterion at once: substring match on
// title and director, exact match on genre (all case-insensitive), equality
// on year. Empty criteria are skipped.
func (p *PostgresStorage) SearchMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	const op = "storage.SearchMovies"

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE
	($1 = '' OR title ILIKE '%%' || $1 || '%%') AND
	($2 = '' OR lower(genre) = lower($2)) AND
	($3 = '' OR director ILIKE '%%' || $3 || '%%') AND
	($4 = 0 OR year_released = $4)
	ORDER BY created_at;`, movieColumns, moviesTable)

	rows, err := p.db.Query(ctx, query, filter.Title, filter.Genre, filter.Director, filter.Year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s (rows): %w", op, err)
	}

	return movies, nil
}
