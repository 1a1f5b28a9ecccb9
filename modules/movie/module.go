package movie

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/movie-catalog/domain/movie"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MovieModule provides the movie catalog services.
type MovieModule struct {
	db      *gorm.DB
	cache   *Cache
	service *Service
	config  Config
}

// Compile-time interface checks.
var _ mono.Module = (*MovieModule)(nil)
var _ mono.ServiceProviderModule = (*MovieModule)(nil)
var _ mono.HealthCheckableModule = (*MovieModule)(nil)

// NewModule creates a new MovieModule configured from the environment.
func NewModule() *MovieModule {
	return NewModuleWithConfig(LoadConfig())
}

// NewModuleWithConfig creates a new MovieModule with an explicit configuration.
func NewModuleWithConfig(config Config) *MovieModule {
	return &MovieModule{
		config: config,
	}
}

// Name returns the module name.
func (m *MovieModule) Name() string {
	return "movie"
}

// Start opens the catalog database and, when configured, the redis cache.
func (m *MovieModule) Start(ctx context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Movie{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if m.config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: m.config.RedisAddr,
		})
		cache := NewCache(client, "movie:", m.config.CacheTTL)
		if err := cache.Ping(ctx); err != nil {
			client.Close()
			return fmt.Errorf("failed to connect to redis at %s: %w", m.config.RedisAddr, err)
		}
		m.cache = cache
		log.Printf("[movie] Redis cache enabled (addr: %s, ttl: %v)", m.config.RedisAddr, m.config.CacheTTL)
	}

	m.service = NewService(NewRepository(db), m.cache)

	log.Printf("[movie] Module started (database: %s)", m.config.DBPath)
	return nil
}

// Stop shuts down the module.
func (m *MovieModule) Stop(_ context.Context) error {
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			log.Printf("[movie] Error closing redis client: %v", err)
		}
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[movie] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MovieModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"database": m.config.DBPath,
		"cache":    "disabled",
	}
	if m.cache != nil {
		if err := m.cache.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
			}
		}
		details["cache"] = m.service.CacheStats()
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *MovieModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-movie", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create-movie service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-movie", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-movie service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-movies", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-movies service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-movie", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-movie service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-movie", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-movie service: %w", err)
	}

	log.Printf("[movie] Registered services: create-movie, get-movie, list-movies, update-movie, delete-movie")
	return nil
}

func (m *MovieModule) handleCreate(ctx context.Context, req CreateMovieRequest, _ *mono.Msg) (domain.Movie, error) {
	mv, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Movie{}, err
	}
	return *mv, nil
}

func (m *MovieModule) handleGet(ctx context.Context, req GetMovieRequest, _ *mono.Msg) (domain.Movie, error) {
	mv, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return domain.Movie{}, err
	}
	return *mv, nil
}

func (m *MovieModule) handleList(ctx context.Context, _ ListMoviesRequest, _ *mono.Msg) (ListMoviesResponse, error) {
	movies, err := m.service.List(ctx)
	if err != nil {
		return ListMoviesResponse{}, err
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}
	return ListMoviesResponse{Movies: movies}, nil
}

func (m *MovieModule) handleUpdate(ctx context.Context, req UpdateMovieRequest, _ *mono.Msg) (domain.Movie, error) {
	mv, err := m.service.Update(ctx, req.ID, req)
	if err != nil {
		return domain.Movie{}, err
	}
	return *mv, nil
}

func (m *MovieModule) handleDelete(ctx context.Context, req DeleteMovieRequest, _ *mono.Msg) (DeleteMovieResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteMovieResponse{}, err
	}
	return DeleteMovieResponse{Deleted: true}, nil
}
