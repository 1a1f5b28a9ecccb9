package movie

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	domain "github.com/example/movie-catalog/domain/movie"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidMovie is returned when required movie fields are missing or malformed.
var ErrInvalidMovie = errors.New("invalid movie: title, image and a four-digit publishing year are required")

const listCacheKey = "list"

func movieCacheKey(id string) string {
	return "id:" + id
}

// Service implements catalog operations with an optional read cache.
//
// Every write bumps generation under the write lock before invalidating.
// A database read may only populate the cache if no write finished while
// it was in flight, so a slow reader cannot put back a pre-write value.
type Service struct {
	repo  *Repository
	cache *Cache

	loads      singleflight.Group
	mu         sync.RWMutex
	generation uint64
}

// loaded is a database read tagged with the generation it started in.
type loaded struct {
	value      any
	generation uint64
}

// NewService creates a new movie service. cache may be nil.
func NewService(repo *Repository, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Create adds a movie to the catalog. Titles are unique.
func (s *Service) Create(ctx context.Context, req CreateMovieRequest) (*domain.Movie, error) {
	m := &domain.Movie{
		Title:          strings.TrimSpace(req.Title),
		Image:          strings.TrimSpace(req.Image),
		PublishingYear: strings.TrimSpace(req.PublishingYear),
	}
	if err := validateMovie(m); err != nil {
		return nil, err
	}

	exists, err := s.repo.TitleExists(ctx, m.Title, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMovieExists
	}

	now := time.Now()
	m.ID = uuid.New().String()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx, listCacheKey)
	return m, nil
}

// Get returns a movie by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Movie, error) {
	key := movieCacheKey(id)

	if s.cache != nil {
		var cached domain.Movie
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[movie] Cache read failed for %s: %v", key, err)
		} else if found {
			return &cached, nil
		}
	}

	res, err := s.load(key, func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	m := res.value.(*domain.Movie)
	s.store(ctx, key, m, res.generation)
	return m, nil
}

// List returns every movie in the catalog.
func (s *Service) List(ctx context.Context) ([]*domain.Movie, error) {
	if s.cache != nil {
		var cached []*domain.Movie
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			log.Printf("[movie] Cache read failed for %s: %v", listCacheKey, err)
		} else if found {
			return cached, nil
		}
	}

	res, err := s.load(listCacheKey, func() (any, error) {
		return s.repo.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	movies := res.value.([]*domain.Movie)
	s.store(ctx, listCacheKey, movies, res.generation)
	return movies, nil
}

// Update applies the non-nil fields of req to the movie with the given ID.
func (s *Service) Update(ctx context.Context, id string, req UpdateMovieRequest) (*domain.Movie, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Image != nil {
		m.Image = strings.TrimSpace(*req.Image)
	}
	if req.PublishingYear != nil {
		m.PublishingYear = strings.TrimSpace(*req.PublishingYear)
	}
	if err := validateMovie(m); err != nil {
		return nil, err
	}

	if req.Title != nil {
		exists, err := s.repo.TitleExists(ctx, m.Title, m.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrMovieExists
		}
	}

	m.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx, movieCacheKey(id), listCacheKey)
	return m, nil
}

// Delete removes a movie from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, movieCacheKey(id), listCacheKey)
	return nil
}

// CacheStats returns cache statistics, or nil when caching is disabled.
func (s *Service) CacheStats() *StatsSnapshot {
	if s.cache == nil {
		return nil
	}
	stats := s.cache.GetStats()
	return &stats
}

// load runs fn once per key among concurrent callers and records the
// generation observed before the read started.
func (s *Service) load(key string, fn func() (any, error)) (loaded, error) {
	v, err, _ := s.loads.Do(key, func() (any, error) {
		s.mu.RLock()
		gen := s.generation
		s.mu.RUnlock()

		value, err := fn()
		if err != nil {
			return nil, err
		}
		return loaded{value: value, generation: gen}, nil
	})
	if err != nil {
		return loaded{}, err
	}
	return v.(loaded), nil
}

// store caches value unless a write has completed since it was read.
func (s *Service) store(ctx context.Context, key string, value any, generation uint64) {
	if s.cache == nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.generation != generation {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[movie] Cache write failed for %s: %v", key, err)
	}
}

// invalidate marks a completed write and drops the affected keys.
func (s *Service) invalidate(ctx context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++

	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("[movie] Cache invalidation failed for %v: %v", keys, err)
	}
}

func validateMovie(m *domain.Movie) error {
	if m.Title == "" || m.Image == "" {
		return ErrInvalidMovie
	}
	if len(m.PublishingYear) != 4 {
		return ErrInvalidMovie
	}
	if _, err := strconv.Atoi(m.PublishingYear); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMovie, m.PublishingYear)
	}
	return nil
}
