package repository

import (
	"context"
	"time"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
)

// RecipeFilter defines filter criteria for listing recipes.
type RecipeFilter struct {
	Cuisine    *string
	Category   *string
	Difficulty *string
	DietaryTag *string
	Status     *string
	AuthorID   *string
	Search     *string
	Page       int
	PerPage    int
}

// RecipeRepository defines the interface for recipe persistence operations.
type RecipeRepository interface {
	// Create inserts a new recipe into the store.
	Create(ctx context.Context, recipe *domain.Recipe) error

	// GetByID retrieves a recipe by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Recipe, error)

	// GetBySlug retrieves a recipe by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Recipe, error)

	// List returns recipes matching the given filter along with the total count.
	List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, int, error)

	// ListPublished returns the full published corpus the recommendation
	// scorer works over.
	ListPublished(ctx context.Context) ([]domain.Recipe, error)

	// ListPublishedSince returns published recipes created at or after the
	// given cutoff, for trending ranking.
	ListPublishedSince(ctx context.Context, cutoff time.Time) ([]domain.Recipe, error)

	// Update modifies an existing recipe in the store.
	Update(ctx context.Context, recipe *domain.Recipe) error

	// Delete removes a recipe from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// IncrementViews bumps the view counter for a recipe.
	IncrementViews(ctx context.Context, id string) error

	// AdjustFavorites moves the favorite counter by delta (+1 favorite,
	// -1 unfavorite). The counter never drops below zero.
	AdjustFavorites(ctx context.Context, id string, delta int) error
}

// RatingRepository defines the interface for rating persistence operations.
type RatingRepository interface {
	// Upsert inserts a rating or replaces the user's previous rating of the
	// same recipe, and refreshes the recipe's rating aggregates.
	Upsert(ctx context.Context, rating *domain.Rating) error

	// ListByRecipe returns paginated ratings for a recipe with the total count.
	ListByRecipe(ctx context.Context, recipeID string, page, perPage int) ([]domain.Rating, int, error)

	// ListByUser returns the flat (recipe, rating) history for a user.
	ListByUser(ctx context.Context, userID string) ([]domain.UserRating, error)

	// GetSummary returns the aggregate rating statistics for a recipe.
	GetSummary(ctx context.Context, recipeID string) (*domain.RatingSummary, error)
}

// PreferenceRepository defines the interface for user preference persistence.
type PreferenceRepository interface {
	// Get retrieves a user's declared preferences. A user with no stored
	// preferences yields an empty Preferences value, not an error.
	Get(ctx context.Context, userID string) (*domain.Preferences, error)

	// Put stores (or replaces) a user's declared preferences.
	Put(ctx context.Context, prefs *domain.Preferences) error
}
