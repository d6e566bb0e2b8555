package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/prabesh187/recipe-sharing-platform/internal/cache"
	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/internal/event"
	"github.com/prabesh187/recipe-sharing-platform/internal/repository"
	pkgkafka "github.com/prabesh187/recipe-sharing-platform/pkg/kafka"
)

// --- Mock Repositories ---

type mockRecipeRepository struct {
	mock.Mock
}

func (m *mockRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *mockRecipeRepository) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) GetBySlug(ctx context.Context, slug string) (*domain.Recipe, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Recipe), args.Int(1), args.Error(2)
}

func (m *mockRecipeRepository) ListPublished(ctx context.Context) ([]domain.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) ListPublishedSince(ctx context.Context, cutoff time.Time) ([]domain.Recipe, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *mockRecipeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRecipeRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRecipeRepository) AdjustFavorites(ctx context.Context, id string, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) ListByRecipe(ctx context.Context, recipeID string, page, perPage int) ([]domain.Rating, int, error) {
	args := m.Called(ctx, recipeID, page, perPage)
	return args.Get(0).([]domain.Rating), args.Int(1), args.Error(2)
}

func (m *mockRatingRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserRating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRating), args.Error(1)
}

func (m *mockRatingRepository) GetSummary(ctx context.Context, recipeID string) (*domain.RatingSummary, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}

type mockPreferenceRepository struct {
	mock.Mock
}

func (m *mockPreferenceRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preferences), args.Error(1)
}

func (m *mockPreferenceRepository) Put(ctx context.Context, prefs *domain.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer creates a producer pointing at no real broker; publish
// failures are logged by the services and never fail the operation.
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func newTestCache(t *testing.T) *cache.RecommendationCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRecommendationCache(client, time.Minute)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
