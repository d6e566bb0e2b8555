package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prabesh187/recipe-sharing-platform/internal/cache"
	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/internal/event"
	"github.com/prabesh187/recipe-sharing-platform/internal/repository"
	apperrors "github.com/prabesh187/recipe-sharing-platform/pkg/errors"
	"github.com/prabesh187/recipe-sharing-platform/pkg/slug"
)

// RecipeService implements the business logic for recipe operations.
type RecipeService struct {
	recipes  repository.RecipeRepository
	ratings  repository.RatingRepository
	producer *event.Producer
	cache    *cache.RecommendationCache
	logger   *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipes repository.RecipeRepository,
	ratings repository.RatingRepository,
	producer *event.Producer,
	recCache *cache.RecommendationCache,
	logger *slog.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		ratings:  ratings,
		producer: producer,
		cache:    recCache,
		logger:   logger,
	}
}

// CreateRecipeInput holds the parameters for creating a recipe.
type CreateRecipeInput struct {
	Title       string
	Description string
	Cuisine     string
	Category    string
	Difficulty  string
	DietaryTags []string
	CookingTime int
	PrepTime    int
	Servings    int
	AuthorID    string
	IsPremium   bool
	Price       int64
}

// UpdateRecipeInput holds the parameters for partially updating a recipe.
type UpdateRecipeInput struct {
	Title       *string
	Description *string
	Cuisine     *string
	Category    *string
	Difficulty  *string
	DietaryTags []string
	CookingTime *int
	PrepTime    *int
	Servings    *int
	Status      *string
	IsPremium   *bool
	Price       *int64
}

// RateRecipeInput holds the parameters for rating a recipe.
type RateRecipeInput struct {
	RecipeID string
	UserID   string
	Rating   int
	Review   string
}

// CreateRecipe creates a new recipe in draft status.
func (s *RecipeService) CreateRecipe(ctx context.Context, input *CreateRecipeInput) (*domain.Recipe, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("recipe title is required")
	}
	if input.AuthorID == "" {
		return nil, apperrors.InvalidInput("author id is required")
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid category %q, must be one of: %s",
			input.Category, strings.Join(domain.ValidCategories(), ", ")))
	}
	if !domain.IsValidDifficulty(input.Difficulty) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid difficulty %q, must be one of: %s",
			input.Difficulty, strings.Join(domain.ValidDifficulties(), ", ")))
	}
	if input.CookingTime < 0 || input.PrepTime < 0 {
		return nil, apperrors.InvalidInput("cooking and prep times must not be negative")
	}
	for _, tag := range input.DietaryTags {
		if !domain.IsValidDietaryTag(tag) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown dietary tag %q", tag))
		}
	}
	if input.IsPremium && input.Price <= 0 {
		return nil, apperrors.InvalidInput("premium recipes require a positive price")
	}

	now := time.Now().UTC()
	recipe := &domain.Recipe{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Slug:        slug.Generate(input.Title),
		Description: input.Description,
		Cuisine:     strings.ToLower(input.Cuisine),
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		DietaryTags: input.DietaryTags,
		CookingTime: input.CookingTime,
		PrepTime:    input.PrepTime,
		Servings:    input.Servings,
		AuthorID:    input.AuthorID,
		Status:      domain.RecipeStatusDraft,
		IsPremium:   input.IsPremium,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if recipe.DietaryTags == nil {
		recipe.DietaryTags = []string{}
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	if err := s.producer.PublishRecipeCreated(ctx, recipe); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish recipe.created event",
			slog.String("recipe_id", recipe.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "recipe created",
		slog.String("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug),
	)

	return recipe, nil
}

// GetRecipe retrieves a recipe by its ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe by id: %w", err)
	}
	return recipe, nil
}

// GetRecipeBySlug retrieves a recipe by its slug.
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slugStr string) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, fmt.Errorf("get recipe by slug: %w", err)
	}
	return recipe, nil
}

// ListRecipes returns a filtered, paginated list of recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	recipes, total, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return recipes, total, nil
}

// UpdateRecipe applies partial updates to an existing recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, input *UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("recipe title must not be empty")
		}
		recipe.Title = *input.Title
		recipe.Slug = slug.Generate(*input.Title)
	}

	if input.Description != nil {
		recipe.Description = *input.Description
	}

	if input.Cuisine != nil {
		recipe.Cuisine = strings.ToLower(*input.Cuisine)
	}

	if input.Category != nil {
		if !domain.IsValidCategory(*input.Category) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid category %q, must be one of: %s",
				*input.Category, strings.Join(domain.ValidCategories(), ", ")))
		}
		recipe.Category = *input.Category
	}

	if input.Difficulty != nil {
		if !domain.IsValidDifficulty(*input.Difficulty) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid difficulty %q, must be one of: %s",
				*input.Difficulty, strings.Join(domain.ValidDifficulties(), ", ")))
		}
		recipe.Difficulty = *input.Difficulty
	}

	if input.DietaryTags != nil {
		for _, tag := range input.DietaryTags {
			if !domain.IsValidDietaryTag(tag) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("unknown dietary tag %q", tag))
			}
		}
		recipe.DietaryTags = input.DietaryTags
	}

	if input.CookingTime != nil {
		if *input.CookingTime < 0 {
			return nil, apperrors.InvalidInput("cooking time must not be negative")
		}
		recipe.CookingTime = *input.CookingTime
	}

	if input.PrepTime != nil {
		if *input.PrepTime < 0 {
			return nil, apperrors.InvalidInput("prep time must not be negative")
		}
		recipe.PrepTime = *input.PrepTime
	}

	if input.Servings != nil {
		recipe.Servings = *input.Servings
	}

	if input.Status != nil {
		if !domain.IsValidStatus(*input.Status) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s",
				*input.Status, strings.Join(domain.ValidStatuses(), ", ")))
		}
		recipe.Status = *input.Status
	}

	if input.IsPremium != nil {
		recipe.IsPremium = *input.IsPremium
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		recipe.Price = *input.Price
	}

	if recipe.IsPremium && recipe.Price <= 0 {
		return nil, apperrors.InvalidInput("premium recipes require a positive price")
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if err := s.producer.PublishRecipeUpdated(ctx, recipe); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish recipe.updated event",
			slog.String("recipe_id", recipe.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "recipe updated",
		slog.String("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug),
	)

	return recipe, nil
}

// DeleteRecipe removes a recipe by its ID. Only the author may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, requesterID string) error {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get recipe for delete: %w", err)
	}

	if recipe.AuthorID != requesterID {
		return apperrors.Forbidden("only the author can delete a recipe")
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	if err := s.producer.PublishRecipeDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish recipe.deleted event",
			slog.String("recipe_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "recipe deleted",
		slog.String("recipe_id", id),
	)

	return nil
}

// RecordView bumps the view counter for a recipe. View counts feed trending
// scores, so failures are logged but never surfaced to the reader.
func (s *RecipeService) RecordView(ctx context.Context, id string) {
	if err := s.recipes.IncrementViews(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to record recipe view",
			slog.String("recipe_id", id),
			slog.String("error", err.Error()),
		)
	}
}

// FavoriteRecipe bumps the favorite counter for a recipe.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, id string) error {
	if err := s.recipes.AdjustFavorites(ctx, id, 1); err != nil {
		return fmt.Errorf("favorite recipe: %w", err)
	}
	return nil
}

// UnfavoriteRecipe decrements the favorite counter for a recipe.
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, id string) error {
	if err := s.recipes.AdjustFavorites(ctx, id, -1); err != nil {
		return fmt.Errorf("unfavorite recipe: %w", err)
	}
	return nil
}

// RateRecipe records a user's rating of a recipe, refreshes the recipe's
// aggregates, and invalidates the user's cached recommendations.
func (s *RecipeService) RateRecipe(ctx context.Context, input *RateRecipeInput) (*domain.RatingSummary, error) {
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	recipe, err := s.recipes.GetByID(ctx, input.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe for rating: %w", err)
	}

	if recipe.AuthorID == input.UserID {
		return nil, apperrors.Forbidden("authors cannot rate their own recipes")
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		ID:        uuid.New().String(),
		RecipeID:  input.RecipeID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Review:    input.Review,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	summary, err := s.ratings.GetSummary(ctx, input.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("get rating summary: %w", err)
	}

	if err := s.producer.PublishRecipeRated(ctx, rating, summary); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish recipe.rated event",
			slog.String("recipe_id", input.RecipeID),
			slog.String("error", err.Error()),
		)
	}

	// The user's taste profile changed, so their cached recommendations are stale.
	if err := s.cache.InvalidateForYou(ctx, input.UserID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate recommendation cache",
			slog.String("user_id", input.UserID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "recipe rated",
		slog.String("recipe_id", input.RecipeID),
		slog.String("user_id", input.UserID),
		slog.Int("rating", input.Rating),
	)

	return summary, nil
}

// ListRatings returns paginated ratings for a recipe.
func (s *RecipeService) ListRatings(ctx context.Context, recipeID string, page, perPage int) ([]domain.Rating, int, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	ratings, total, err := s.ratings.ListByRecipe(ctx, recipeID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}

	return ratings, total, nil
}
