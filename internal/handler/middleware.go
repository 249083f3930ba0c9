package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"videoclub/internal/auth"
	"videoclub/internal/models"
)

const (
	requestIDKey = "RequestID"
	principalKey = "Principal"
)

// RequestID tags every request with a fresh id, echoed in the response
// header and attached to request logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)

		c.Next()
	}
}

func LogRequests(lgr *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		lgr.Info("request",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// authorize extracts the bearer token, validates it, and checks the
// principal's role against required. On success the principal is stored in
// the request context for handlers that need the caller's identity.
func (h *Handler) authorize(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization header")

			return
		}

		principal, err := h.tokens.Authorize(tokenStr, required)
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				newErrorResponse(c, http.StatusForbidden, "access denied")

				return
			}

			newErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")

			return
		}

		c.Set(principalKey, principal)

		c.Next()
	}
}

// authenticated admits any valid token regardless of role. Used for
// self-profile routes, which are scoped to the token's own identity.
func (h *Handler) authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization header")

			return
		}

		principal, err := h.tokens.Validate(tokenStr)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")

			return
		}

		c.Set(principalKey, principal)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

func principalFromContext(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}

	principal, ok := v.(models.Principal)

	return principal, ok
}
