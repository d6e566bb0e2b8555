package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prabesh187/recipe-sharing-platform/internal/cache"
	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/internal/recommend"
	"github.com/prabesh187/recipe-sharing-platform/internal/repository"
	apperrors "github.com/prabesh187/recipe-sharing-platform/pkg/errors"
)

// Trending timeframe constants.
const (
	TimeframeDay   = "1d"
	TimeframeWeek  = "7d"
	TimeframeMonth = "30d"
)

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
)

// timeframeLookback maps a timeframe label to its lookback duration.
var timeframeLookback = map[string]time.Duration{
	TimeframeDay:   24 * time.Hour,
	TimeframeWeek:  7 * 24 * time.Hour,
	TimeframeMonth: 30 * 24 * time.Hour,
}

// RecommendationService assembles personalized, trending, and similar recipe
// lists on top of the recommendation scorer.
type RecommendationService struct {
	recipes     repository.RecipeRepository
	ratings     repository.RatingRepository
	preferences repository.PreferenceRepository
	cache       *cache.RecommendationCache
	logger      *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(
	recipes repository.RecipeRepository,
	ratings repository.RatingRepository,
	preferences repository.PreferenceRepository,
	recCache *cache.RecommendationCache,
	logger *slog.Logger,
) *RecommendationService {
	return &RecommendationService{
		recipes:     recipes,
		ratings:     ratings,
		preferences: preferences,
		cache:       recCache,
		logger:      logger,
	}
}

// ForYou returns the personalized recommendation list for a user.
//
// Recommendations are best-effort: if any of the underlying fetches fail, the
// error is logged and an empty list is returned so the caller's page still
// renders. Assembled lists are cached per user with a short TTL.
func (s *RecommendationService) ForYou(ctx context.Context, userID string, limit int) []domain.Recommendation {
	limit = clampLimit(limit)

	if cached, ok, err := s.cache.GetForYou(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "recommendation cache read failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	} else if ok {
		return truncateRecommendations(cached, limit)
	}

	userRatings, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load user ratings for recommendations",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return []domain.Recommendation{}
	}

	prefs, err := s.preferences.Get(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load user preferences for recommendations",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return []domain.Recommendation{}
	}

	corpus, err := s.recipes.ListPublished(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load recipe corpus for recommendations",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return []domain.Recommendation{}
	}

	// Assemble and cache the full list so a later request with a larger limit
	// is not served a list truncated to the first caller's limit.
	recs := recommend.Recommend(recommend.RecommendInput{
		Ratings:     userRatings,
		Preferences: prefs,
		Corpus:      corpus,
		Limit:       maxRecommendationLimit,
	})

	if err := s.cache.SetForYou(ctx, userID, recs); err != nil {
		s.logger.WarnContext(ctx, "recommendation cache write failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.DebugContext(ctx, "recommendations assembled",
		slog.String("user_id", userID),
		slog.Int("count", len(recs)),
		slog.Int("rated", len(userRatings)),
		slog.Int("corpus", len(corpus)),
	)

	return truncateRecommendations(recs, limit)
}

// Trending returns the highest-engagement published recipes created inside the
// timeframe's lookback window. Unknown timeframes default to one week.
func (s *RecommendationService) Trending(ctx context.Context, timeframe string, limit int) ([]domain.Recipe, error) {
	limit = clampLimit(limit)

	lookback, ok := timeframeLookback[timeframe]
	if !ok {
		timeframe = TimeframeWeek
		lookback = timeframeLookback[TimeframeWeek]
	}

	if cached, ok, err := s.cache.GetTrending(ctx, timeframe); err != nil {
		s.logger.WarnContext(ctx, "trending cache read failed",
			slog.String("timeframe", timeframe),
			slog.String("error", err.Error()),
		)
	} else if ok {
		return truncateRecipes(cached, limit), nil
	}

	cutoff := time.Now().UTC().Add(-lookback)
	recipes, err := s.recipes.ListPublishedSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list recipes for trending: %w", err)
	}

	// Rank and cache the full window so the cached entry serves any limit.
	ranked := recommend.RankTrending(recipes, maxRecommendationLimit)

	if err := s.cache.SetTrending(ctx, timeframe, ranked); err != nil {
		s.logger.WarnContext(ctx, "trending cache write failed",
			slog.String("timeframe", timeframe),
			slog.String("error", err.Error()),
		)
	}

	return truncateRecipes(ranked, limit), nil
}

// Similar returns recipes most similar to the given base recipe. A missing
// base recipe surfaces as not-found; this is the one recommendation endpoint
// that is not best-effort.
func (s *RecommendationService) Similar(ctx context.Context, recipeID string, limit int) ([]domain.Recipe, error) {
	limit = clampLimit(limit)

	base, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get base recipe: %w", err)
	}

	corpus, err := s.recipes.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes for similarity: %w", err)
	}

	return recommend.RankSimilar(base, corpus, limit), nil
}

// GetPreferences returns a user's declared taste preferences.
func (s *RecommendationService) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	prefs, err := s.preferences.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences replaces a user's declared preferences and invalidates
// their cached recommendations.
func (s *RecommendationService) UpdatePreferences(ctx context.Context, userID string, dietaryTags, cuisines []string) (*domain.Preferences, error) {
	for _, tag := range dietaryTags {
		if !domain.IsValidDietaryTag(tag) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown dietary tag %q", tag))
		}
	}

	prefs := &domain.Preferences{
		UserID:      userID,
		DietaryTags: dietaryTags,
		Cuisines:    cuisines,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.preferences.Put(ctx, prefs); err != nil {
		return nil, fmt.Errorf("put preferences: %w", err)
	}

	if err := s.cache.InvalidateForYou(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate recommendation cache",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "preferences updated",
		slog.String("user_id", userID),
		slog.Int("dietary_tags", len(dietaryTags)),
		slog.Int("cuisines", len(cuisines)),
	)

	return prefs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		return maxRecommendationLimit
	}
	return limit
}

func truncateRecommendations(recs []domain.Recommendation, limit int) []domain.Recommendation {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

func truncateRecipes(recipes []domain.Recipe, limit int) []domain.Recipe {
	if len(recipes) > limit {
		return recipes[:limit]
	}
	return recipes
}
