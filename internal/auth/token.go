package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"videoclub/internal/models"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates signed session tokens. The secret and
// TTL are set once at startup and never change for the process lifetime, so
// a single manager is safe for unsynchronized concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the username and role, valid for the
// configured TTL starting now.
func (m *TokenManager) Issue(username string, role models.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate verifies the signature and expiry and returns the principal the
// token was issued for. Expired tokens fail with ErrTokenExpired, anything
// tampered or malformed with ErrTokenInvalid.
func (m *TokenManager) Validate(tokenString string) (models.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, ErrTokenExpired
		}
		return models.Principal{}, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return models.Principal{}, ErrTokenInvalid
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Principal{}, ErrTokenInvalid
	}

	return models.Principal{Username: claims.Subject, Role: role}, nil
}

// Authorize validates the token and checks the principal's role against the
// requirement. Validation failures pass through; a valid token with an
// insufficient role fails with ErrForbidden.
func (m *TokenManager) Authorize(tokenString string, required models.Role) (models.Principal, error) {
	principal, err := m.Validate(tokenString)
	if err != nil {
		return models.Principal{}, err
	}
	if !principal.Role.Satisfies(required) {
		return models.Principal{}, ErrForbidden
	}
	return principal, nil
}
