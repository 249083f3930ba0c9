package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity derived from a valid token.
// It lives only for the request that produced it and is never persisted.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type Movie struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Genre           string    `json:"genre"`
	Director        string    `json:"director"`
	YearReleased    int       `json:"year_released"`
	DurationMinutes int       `json:"duration_minutes"`
	Rating          float64   `json:"rating"`
	PosterURL       string    `json:"poster_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MovieFilter is a conjunctive search predicate: a movie matches only if it
// satisfies every non-zero criterion. Title and Director match as
// case-insensitive substrings, Genre as a case-insensitive equality.
type MovieFilter struct {
	Title    string
	Genre    string
	Director string
	Year     int
}

func (f MovieFilter) Empty() bool {
	return f.Title == "" && f.Genre == "" && f.Director == "" && f.Year == 0
}
