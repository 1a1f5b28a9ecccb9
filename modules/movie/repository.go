package movie

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/movie-catalog/domain/movie"
	"gorm.io/gorm"
)

var (
	// ErrMovieNotFound is returned when a movie is not found.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrMovieExists is returned when a movie with the same title exists.
	ErrMovieExists = errors.New("movie already exists")
)

// Repository provides access to movie storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new movie repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new movie to the database.
func (r *Repository) Create(ctx context.Context, m *domain.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrMovieExists
		}
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// FindByID retrieves a movie by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	var m domain.Movie
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	return &m, nil
}

// TitleExists reports whether another movie already uses title.
// excludeID is ignored when empty.
func (r *Repository) TitleExists(ctx context.Context, title, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Movie{}).Where("title = ?", title)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return count > 0, nil
}

// FindAll retrieves all movies, newest first.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	return movies, nil
}

// Update saves the changed fields of an existing movie.
func (r *Repository) Update(ctx context.Context, m *domain.Movie) error {
	result := r.db.WithContext(ctx).Model(&domain.Movie{}).Where("id = ?", m.ID).Updates(m)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrMovieExists
		}
		return fmt.Errorf("failed to update movie: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Movie{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
