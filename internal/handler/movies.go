package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"videoclub/internal/models"
	"videoclub/internal/storage"
)

type movieRequest struct {
	Title           string  `json:"title" binding:"required,max=200"`
	Description     string  `json:"description"`
	Genre           string  `json:"genre" binding:"max=100"`
	Director        string  `json:"director" binding:"max=100"`
	YearReleased    int     `json:"year_released" binding:"omitempty,gte=1900,lte=2030"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,gte=1"`
	Rating          float64 `json:"rating" binding:"gte=0,lte=10"`
	PosterURL       string  `json:"poster_url" binding:"max=500"`
}

func (r movieRequest) toModel() models.Movie {
	return models.Movie{
		Title:           r.Title,
		Description:     r.Description,
		Genre:           r.Genre,
		Director:        r.Director,
		YearReleased:    r.YearReleased,
		DurationMinutes: r.DurationMinutes,
		Rating:          r.Rating,
		PosterURL:       r.PosterURL,
	}
}

func movieIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid movie id")

		return uuid.Nil, false
	}

	return id, true
}

// GET /api/movies
func (h *Handler) ListMovies(c *gin.Context) {
	const op = "handler.ListMovies"

	log := h.log.With(slog.String("op", op))

	movies, err := h.movieService.ListMovies(c.Request.Context())
	if err != nil {
		log.Error("failed to list movies", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusOK, movies)
}

// GET /api/movies/:id
func (h *Handler) GetMovie(c *gin.Context) {
	const op = "handler.GetMovie"

	log := h.log.With(slog.String("op", op))

	id, ok := movieIDParam(c)
	if !ok {
		return
	}

	movie, err := h.movieService.GetMovie(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "movie not found")

			return
		}

		log.Error("failed to get movie", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusOK, movie)
}

// POST /api/movies
func (h *Handler) CreateMovie(c *gin.Context) {
	const op = "handler.CreateMovie"

	log := h.log.With(slog.String("op", op))

	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	movie, err := h.movieService.CreateMovie(c.Request.Context(), req.toModel())
	if err != nil {
		log.Error("failed to create movie", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to create movie")

		return
	}

	c.JSON(http.StatusCreated, movie)
}

// PUT /api/movies/:id
func (h *Handler) UpdateMovie(c *gin.Context) {
	const op = "handler.UpdateMovie"

	log := h.log.With(slog.String("op", op))

	id, ok := movieIDParam(c)
	if !ok {
		return
	}

	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	movie, err := h.movieService.UpdateMovie(c.Request.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "movie not found")

			return
		}

		log.Error("failed to update movie", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to update movie")

		return
	}

	c.JSON(http.StatusOK, movie)
}

// DELETE /api/movies/:id
func (h *Handler) DeleteMovie(c *gin.Context) {
	const op = "handler.DeleteMovie"

	log := h.log.With(slog.String("op", op))

	id, ok := movieIDParam(c)
	if !ok {
		return
	}

	if err := h.movieService.DeleteMovie(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "movie not found")

			return
		}

		log.Error("failed to delete movie", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to delete movie")

		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/movies/search
func (h *Handler) SearchMovies(c *gin.Context) {
	const op = "handler.SearchMovies"

	log := h.log.With(slog.String("op", op))

	filter := models.MovieFilter{
		Title:    c.Query("title"),
		Genre:    c.Query("genre"),
		Director: c.Query("director"),
	}

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "invalid year")

			return
		}
		filter.Year = year
	}

	movies, err := h.movieService.SearchMovies(c.Request.Context(), filter)
	if err != nil {
		log.Error("failed to search movies", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusOK, movies)
}
