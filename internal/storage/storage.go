package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"videoclub/internal/models"
)

const (
	usersTable  = "users"
	moviesTable = "movies"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an insert loses against the unique
	// constraint on users.username. The constraint, not the service-level
	// existence check, is what ultimately guarantees uniqueness under
	// concurrent registrations.
	ErrDuplicateKey = errors.New("duplicate key")
)

type Storage interface {

	// Пользователи
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	SaveUser(ctx context.Context, user models.User) (models.User, error)

	// Каталог фильмов
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error)
	CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	UpdateMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	SearchMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error)

	Close()
}

type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(DbURL string) (*PostgresStorage, error) {
	const op = "storage.NewPostgresStorage"

	conn, err := pgxpool.Connect(context.Background(), DbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresStorage{
		db: conn,
	}, nil
}

func (p *PostgresStorage) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	const op = "storage.FindUserByUsername"

	var user models.User
	var role string
	query := fmt.Sprintf("SELECT id, username, email, password_hash, user_role, created_at FROM %s WHERE username=$1;", usersTable)

	err := p.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user.Role = models.Role(role)

	return user, nil
}

// SaveUser inserts the record when it has no id yet and updates it
// otherwise. The id and created_at of a new record are assigned by the
// database.
func (p *PostgresStorage) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.SaveUser"

	if user.ID == uuid.Nil {
		query := fmt.Sprintf(`INSERT INTO %s(username, email, password_hash, user_role)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at;`, usersTable)

		err := p.db.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role.String()).
			Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return models.User{}, ErrDuplicateKey
			}
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}

		return user, nil
	}

	query := fmt.Sprintf("UPDATE %s SET email=$1, password_hash=$2, user_role=$3 WHERE id=$4;", usersTable)

	tag, err := p.db.Exec(ctx, query, user.Email, user.PasswordHash, user.Role.String(), user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return models.User{}, ErrNotFound
	}

	return user, nil
}

func (p *PostgresStorage) Close() {
	p.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
