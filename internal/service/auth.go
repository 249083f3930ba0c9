package service

import (
	"context"
	"errors"
	"fmt"

	"videoclub/internal/auth"
	"videoclub/internal/models"
	"videoclub/internal/storage"
)

// AuthService verifies credentials against the user store, handles
// registration and profile updates, and issues session tokens on login.
type AuthService struct {
	storage storage.Storage
	hasher  *auth.PasswordHasher
	tokens  *auth.TokenManager
}

func NewAuthService(st storage.Storage, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		storage: st,
		hasher:  hasher,
		tokens:  tokens,
	}
}

// Authenticate verifies the username/password pair. An unknown username and
// a wrong password both fail with ErrInvalidCredentials so the two cases are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	const op = "service.Authenticate"

	user, err := s.storage.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, auth.ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if ok := s.hasher.Check(password, user.PasswordHash); !ok {
		return models.User{}, auth.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and, on success, issues a session token bound to the
// user's identity and stored role.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	const op = "service.Login"

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", models.User{}, err
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return token, user, nil
}

// Register creates a new credential record. The existence check runs first,
// but the losing side of a concurrent duplicate registration is rejected by
// the storage layer's unique constraint and surfaces as ErrUsernameTaken as
// well. Role is chosen by the caller; handlers wiring self-service signup
// must always pass models.RoleUser.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role models.Role) (models.User, error) {
	const op = "service.Register"

	_, err := s.storage.FindUserByUsername(ctx, username)
	if err == nil {
		return models.User{}, auth.ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.SaveUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return models.User{}, auth.ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UpdatePassword re-hashes and persists a new password for an already
// resolved user record. Passing an unresolved record is a caller bug and
// fails with ErrInvalidArgument.
func (s *AuthService) UpdatePassword(ctx context.Context, user models.User, newPassword string) (models.User, error) {
	const op = "service.UpdatePassword"

	if user.Username == "" {
		return models.User{}, auth.ErrInvalidArgument
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user.PasswordHash = passwordHash

	updated, err := s.storage.SaveUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *AuthService) UpdateEmail(ctx context.Context, user models.User, newEmail string) (models.User, error) {
	const op = "service.UpdateEmail"

	if user.Username == "" {
		return models.User{}, auth.ErrInvalidArgument
	}

	user.Email = newEmail

	updated, err := s.storage.SaveUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// FindByUsername is a plain lookup: a miss is (zero, false, nil), not an
// error.
func (s *AuthService) FindByUsername(ctx context.Context, username string) (models.User, bool, error) {
	const op = "service.FindByUsername"

	user, err := s.storage.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return user, true, nil
}
