package movie

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	domain "github.com/example/movie-catalog/domain/movie"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.Movie{}))
	return db
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCache(client, "movie:", time.Minute), mr
}

func strPtr(s string) *string { return &s }

func inception() CreateMovieRequest {
	return CreateMovieRequest{
		Title:          "Inception",
		Image:          "https://img.example.com/inception.jpg",
		PublishingYear: "2010",
	}
}

func TestService_CreateAndGet(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Inception", created.Title)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2010", got.PublishingYear)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)

	tests := []struct {
		name string
		req  CreateMovieRequest
	}{
		{name: "missing title", req: CreateMovieRequest{Image: "x", PublishingYear: "2010"}},
		{name: "blank title", req: CreateMovieRequest{Title: "   ", Image: "x", PublishingYear: "2010"}},
		{name: "missing image", req: CreateMovieRequest{Title: "A", PublishingYear: "2010"}},
		{name: "short year", req: CreateMovieRequest{Title: "A", Image: "x", PublishingYear: "99"}},
		{name: "non-numeric year", req: CreateMovieRequest{Title: "A", Image: "x", PublishingYear: "20XX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidMovie)
		})
	}
}

func TestService_CreateDuplicateTitle(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	_, err = svc.Create(ctx, inception())
	assert.ErrorIs(t, err, ErrMovieExists)
}

func TestService_GetNotFound(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestService_UpdatePartial(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateMovieRequest{PublishingYear: strPtr("2011")})
	require.NoError(t, err)
	assert.Equal(t, "Inception", updated.Title)
	assert.Equal(t, "2011", updated.PublishingYear)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2011", got.PublishingYear)
	assert.Equal(t, created.Image, got.Image)
}

func TestService_UpdateTitleConflict(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, inception())
	require.NoError(t, err)
	other, err := svc.Create(ctx, CreateMovieRequest{Title: "Memento", Image: "x", PublishingYear: "2000"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, UpdateMovieRequest{Title: strPtr("Inception")})
	assert.ErrorIs(t, err, ErrMovieExists)

	// Keeping its own title is not a conflict.
	_, err = svc.Update(ctx, other.ID, UpdateMovieRequest{Title: strPtr("Memento")})
	assert.NoError(t, err)
}

func TestService_UpdateNotFound(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)

	_, err := svc.Update(context.Background(), "missing", UpdateMovieRequest{Title: strPtr("X")})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrMovieNotFound)
}

func TestService_List(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)

	_, err = svc.Create(ctx, inception())
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateMovieRequest{Title: "Memento", Image: "x", PublishingYear: "2000"})
	require.NoError(t, err)

	movies, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestService_CachesReads(t *testing.T) {
	cache, mr := setupTestCache(t)
	svc := NewService(NewRepository(setupTestDB(t)), cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("movie:id:"+created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	stats := svc.CacheStats()
	require.NotNil(t, stats)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestService_WritesInvalidateCache(t *testing.T) {
	cache, mr := setupTestCache(t)
	svc := NewService(NewRepository(setupTestDB(t)), cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("movie:list"))

	_, err = svc.Update(ctx, created.ID, UpdateMovieRequest{Title: strPtr("Inception (2010)")})
	require.NoError(t, err)
	assert.False(t, mr.Exists("movie:list"))
	assert.False(t, mr.Exists("movie:id:"+created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inception (2010)", got.Title)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.False(t, mr.Exists("movie:id:"+created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestService_CacheOutageFallsBackToDatabase(t *testing.T) {
	cache, mr := setupTestCache(t)
	svc := NewService(NewRepository(setupTestDB(t)), cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	mr.Close()

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	assert.Positive(t, svc.CacheStats().Errors)
}

func TestService_CacheStatsDisabled(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	assert.Nil(t, svc.CacheStats())
}

func TestService_SlowReadDoesNotRepopulateAfterWrite(t *testing.T) {
	cache, mr := setupTestCache(t)
	svc := NewService(NewRepository(setupTestDB(t)), cache)
	ctx := context.Background()

	// A list read that finished before the write but stores after it.
	res, err := svc.load(listCacheKey, func() (any, error) {
		return svc.repo.FindAll(ctx)
	})
	require.NoError(t, err)
	assert.Empty(t, res.value)

	_, err = svc.Create(ctx, inception())
	require.NoError(t, err)

	svc.store(ctx, listCacheKey, res.value, res.generation)
	assert.False(t, mr.Exists("movie:list"))

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.True(t, mr.Exists("movie:list"))
}

func TestService_ConcurrentReads(t *testing.T) {
	cache, _ := setupTestCache(t)
	svc := NewService(NewRepository(setupTestDB(t)), cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, inception())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m, err := svc.Get(ctx, created.ID)
			if err == nil && m.ID != created.ID {
				err = assert.AnError
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.List(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
