package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	"videoclub/internal/auth"
	"videoclub/internal/models"
	"videoclub/internal/storage"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeStorage is an in-memory storage.Storage for service tests. saveErr,
// when set, is returned by SaveUser to simulate storage failures and
// unique-constraint rejections.
type fakeStorage struct {
	users   map[string]models.User
	findErr error
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{users: map[string]models.User{}}
}

func (f *fakeStorage) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if f.findErr != nil {
		return models.User{}, f.findErr
	}
	user, ok := f.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStorage) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	if f.saveErr != nil {
		return models.User{}, f.saveErr
	}
	if user.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return models.User{}, err
		}
		user.ID = id
		user.CreatedAt = time.Now().UTC()
	}
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeStorage) ListMovies(context.Context) ([]models.Movie, error) { return nil, nil }
func (f *fakeStorage) GetMovieByID(context.Context, uuid.UUID) (models.Movie, error) {
	return models.Movie{}, storage.ErrNotFound
}
func (f *fakeStorage) CreateMovie(ctx context.Context, m models.Movie) (models.Movie, error) {
	return m, nil
}
func (f *fakeStorage) UpdateMovie(ctx context.Context, m models.Movie) (models.Movie, error) {
	return m, nil
}
func (f *fakeStorage) DeleteMovie(context.Context, uuid.UUID) error { return nil }
func (f *fakeStorage) SearchMovies(context.Context, models.MovieFilter) ([]models.Movie, error) {
	return nil, nil
}
func (f *fakeStorage) Close() {}

func newAuthService(st storage.Storage) *AuthService {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	return NewAuthService(st, hasher, tokens)
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	s := newAuthService(st)

	if _, err := s.Register(context.Background(), "alice", "alice@example.com", "correct", models.RoleUser); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, err := s.Authenticate(context.Background(), "alice", "correct")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if user.Username != "alice" || user.Role != models.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "correct" {
		t.Fatal("password stored in plaintext")
	}
}

func TestAuthenticate_WrongPasswordAndUnknownUser_SameError(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	s := newAuthService(st)

	if _, err := s.Register(context.Background(), "alice", "alice@example.com", "correct", models.RoleUser); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, wrongErr := s.Authenticate(context.Background(), "alice", "wrong")
	if !errors.Is(wrongErr, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", wrongErr)
	}

	_, ghostErr := s.Authenticate(context.Background(), "ghost", "anything")
	if !errors.Is(ghostErr, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", ghostErr)
	}

	// Both failures must collapse to the same error so usernames cannot be
	// enumerated through login.
	if !errors.Is(wrongErr, ghostErr) {
		t.Fatalf("errors differ: %v vs %v", wrongErr, ghostErr)
	}
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	st.findErr = errBoom{}
	s := newAuthService(st)

	_, err := s.Authenticate(context.Background(), "alice", "pw")
	if err == nil || errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("storage failure must not look like bad credentials, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	s := newAuthService(st)

	if _, err := s.Register(context.Background(), "alice", "a@example.com", "pw", models.RoleUser); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	_, err := s.Register(context.Background(), "alice", "other@example.com", "pw2", models.RoleUser)
	if !errors.Is(err, auth.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}

	// The failed attempt must leave no partial state behind.
	user := st.users["alice"]
	if user.Email != "a@example.com" {
		t.Fatalf("failed registration mutated the record: %+v", user)
	}
}

func TestRegister_RaceLoserRejectedByConstraint(t *testing.T) {
	t.Parallel()

	// The existence check passes (empty store), but the insert loses
	// against the unique constraint, as happens to the slower of two
	// concurrent registrations.
	st := newFakeStorage()
	st.saveErr = storage.ErrDuplicateKey
	s := newAuthService(st)

	_, err := s.Register(context.Background(), "alice", "a@example.com", "pw", models.RoleUser)
	if !errors.Is(err, auth.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_IssuesValidToken(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	s := newAuthService(st)

	if _, err := s.Register(context.Background(), "root", "root@example.com", "pw", models.RoleAdmin); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	token, user, err := s.Login(context.Background(), "root", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("unexpected role: %v", user.Role)
	}

	principal, err := s.tokens.Validate(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if principal.Username != "root" || principal.Role != models.RoleAdmin {
		t.Fatalf("principal mismatch: %+v", principal)
	}
}

func TestUpdatePassword_OldStopsWorking(t *testing.T) {
	t.Parallel()

	st := newFakeStorage()
	s := newAuthService(st)

	user, err := s.Register(context.Background(), "alice", "a@example.com", "old-pw", models.RoleUser)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := s.UpdatePassword(context.Background(), user, "new-pw"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}

	if _, err := s.Authenticate(context.Background(), "alice", "new-pw"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := s.Authenticate(context.Background(), "alice", "old-pw"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestUpdatePassword_UnresolvedRecord(t *testing.T) {
	t.Parallel()

	s := newAuthService(newFakeStorage())

	_, err := s.UpdatePassword(context.Background(), models.User{}, "pw")
	if !errors.Is(err, auth.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestFindByUsername_MissIsNotAnError(t *testing.T) {
	t.Parallel()

	s := newAuthService(newFakeStorage())

	_, found, err := s.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if found {
		t.Fatal("found a user that was never registered")
	}
}
