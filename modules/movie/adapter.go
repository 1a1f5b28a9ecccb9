package movie

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/movie-catalog/domain/movie"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MoviePort defines the catalog operations available to other modules.
type MoviePort interface {
	Create(ctx context.Context, req CreateMovieRequest) (*domain.Movie, error)
	Get(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context) ([]*domain.Movie, error)
	Update(ctx context.Context, req UpdateMovieRequest) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}

// MovieAdapter implements MoviePort using the service container.
type MovieAdapter struct {
	container mono.ServiceContainer
}

var _ MoviePort = (*MovieAdapter)(nil)

// NewMovieAdapter creates a new MovieAdapter.
func NewMovieAdapter(container mono.ServiceContainer) *MovieAdapter {
	return &MovieAdapter{
		container: container,
	}
}

// decodeError restores catalog sentinels from a service error message.
func decodeError(err error) error {
	msg := err.Error()
	for _, known := range []error{ErrMovieNotFound, ErrMovieExists, ErrInvalidMovie} {
		if strings.Contains(msg, known.Error()) {
			return known
		}
	}
	return nil
}

func (a *MovieAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		if known := decodeError(err); known != nil {
			return known
		}
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// Create adds a movie.
func (a *MovieAdapter) Create(ctx context.Context, req CreateMovieRequest) (*domain.Movie, error) {
	var resp domain.Movie
	if err := a.call(ctx, "create-movie", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a movie by ID.
func (a *MovieAdapter) Get(ctx context.Context, id string) (*domain.Movie, error) {
	req := GetMovieRequest{ID: id}
	var resp domain.Movie
	if err := a.call(ctx, "get-movie", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the whole catalog.
func (a *MovieAdapter) List(ctx context.Context) ([]*domain.Movie, error) {
	req := ListMoviesRequest{}
	var resp ListMoviesResponse
	if err := a.call(ctx, "list-movies", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

// Update applies a partial update.
func (a *MovieAdapter) Update(ctx context.Context, req UpdateMovieRequest) (*domain.Movie, error) {
	var resp domain.Movie
	if err := a.call(ctx, "update-movie", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a movie.
func (a *MovieAdapter) Delete(ctx context.Context, id string) error {
	req := DeleteMovieRequest{ID: id}
	var resp DeleteMovieResponse
	return a.call(ctx, "delete-movie", &req, &resp)
}
