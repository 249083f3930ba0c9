package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"videoclub/internal/auth"
	"videoclub/internal/models"
	"videoclub/internal/service"
)

type Handler struct {
	authService  *service.AuthService
	movieService *service.MovieService
	tokens       *auth.TokenManager
	log          *slog.Logger
}

func NewHandler(authService *service.AuthService, movieService *service.MovieService, tokens *auth.TokenManager, lgr *slog.Logger) *Handler {
	return &Handler{
		authService:  authService,
		movieService: movieService,
		tokens:       tokens,
		log:          lgr,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), LogRequests(h.log))

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)

		profile := authRoutes.Group("/profile", h.authenticated())
		{
			profile.GET("", h.GetProfile)
			profile.PUT("", h.UpdateProfile)
		}
	}

	movies := api.Group("/movies")
	{
		movies.GET("", h.authorize(models.RoleUser), h.ListMovies)
		movies.GET("/search", h.authorize(models.RoleUser), h.SearchMovies)
		movies.GET("/:id", h.authorize(models.RoleUser), h.GetMovie)

		movies.POST("", h.authorize(models.RoleAdmin), h.CreateMovie)
		movies.PUT("/:id", h.authorize(models.RoleAdmin), h.UpdateMovie)
		movies.DELETE("/:id", h.authorize(models.RoleAdmin), h.DeleteMovie)
	}

	return router
}

type registerRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type updateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	log := h.log.With(slog.String("op", op))

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind register request", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	// Self-service signup always gets the baseline role. Privileged roles
	// are assigned only through internal call paths.
	_, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, models.RoleUser)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			newErrorResponse(c, http.StatusBadRequest, "username is already taken")

			return
		}

		log.Error("failed to register user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to register")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	const op = "handler.Login"

	log := h.log.With(slog.String("op", op))

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			newErrorResponse(c, http.StatusBadRequest, "invalid credentials")

			return
		}

		log.Error("failed to login", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to login")

		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role.String(),
	})
}

// GET /api/auth/profile
func (h *Handler) GetProfile(c *gin.Context) {
	const op = "handler.GetProfile"

	log := h.log.With(slog.String("op", op))

	principal, ok := principalFromContext(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	user, found, err := h.authService.FindByUsername(c.Request.Context(), principal.Username)
	if err != nil {
		log.Error("failed to get profile", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}
	if !found {
		newErrorResponse(c, http.StatusNotFound, "user not found")

		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}

// PUT /api/auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	const op = "handler.UpdateProfile"

	log := h.log.With(slog.String("op", op))

	principal, ok := principalFromContext(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	user, found, err := h.authService.FindByUsername(c.Request.Context(), principal.Username)
	if err != nil {
		log.Error("failed to resolve user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}
	if !found {
		newErrorResponse(c, http.StatusNotFound, "user not found")

		return
	}

	if req.Email != nil && *req.Email != "" {
		user, err = h.authService.UpdateEmail(c.Request.Context(), user, *req.Email)
		if err != nil {
			log.Error("failed to update email", slog.Any("error", err))

			newErrorResponse(c, http.StatusInternalServerError, "failed to update profile")

			return
		}
	}

	if req.Password != nil && *req.Password != "" {
		if _, err = h.authService.UpdatePassword(c.Request.Context(), user, *req.Password); err != nil {
			log.Error("failed to update password", slog.Any("error", err))

			newErrorResponse(c, http.StatusInternalServerError, "failed to update profile")

			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}
