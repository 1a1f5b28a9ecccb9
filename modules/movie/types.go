package movie

import (
	domain "github.com/example/movie-catalog/domain/movie"
)

// CreateMovieRequest represents a create movie request.
type CreateMovieRequest struct {
	Title          string `json:"title"`
	Image          string `json:"image"`
	PublishingYear string `json:"publishing_year"`
}

// GetMovieRequest represents a get movie request.
type GetMovieRequest struct {
	ID string `json:"id"`
}

// ListMoviesRequest represents a list movies request.
type ListMoviesRequest struct{}

// ListMoviesResponse represents a list movies response.
type ListMoviesResponse struct {
	Movies []*domain.Movie `json:"movies"`
}

// UpdateMovieRequest represents a partial movie update. Nil fields are left unchanged.
type UpdateMovieRequest struct {
	ID             string  `json:"id"`
	Title          *string `json:"title,omitempty"`
	Image          *string `json:"image,omitempty"`
	PublishingYear *string `json:"publishing_year,omitempty"`
}

// DeleteMovieRequest represents a delete movie request.
type DeleteMovieRequest struct {
	ID string `json:"id"`
}

// DeleteMovieResponse represents a delete movie response.
type DeleteMovieResponse struct {
	Deleted bool `json:"deleted"`
}
