package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	pkgkafka "github.com/prabesh187/recipe-sharing-platform/pkg/kafka"
)

// Kafka topic constants for recipe domain events.
const (
	TopicRecipeCreated = "recipeshare.recipe.created"
	TopicRecipeUpdated = "recipeshare.recipe.updated"
	TopicRecipeDeleted = "recipeshare.recipe.deleted"
	TopicRecipeRated   = "recipeshare.recipe.rated"
)

// Aggregate type constant.
const AggregateTypeRecipe = "recipe"

// Source identifier for events originating from this service.
const SourceRecipeService = "recipe-service"

// RecipeCreatedData is the payload for a recipe.created event.
type RecipeCreatedData struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Cuisine     string   `json:"cuisine"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	AuthorID    string   `json:"author_id"`
	Status      string   `json:"status"`
}

// RecipeUpdatedData is the payload for a recipe.updated event.
type RecipeUpdatedData struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Cuisine     string   `json:"cuisine"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	AuthorID    string   `json:"author_id"`
	Status      string   `json:"status"`
}

// RecipeDeletedData is the payload for a recipe.deleted event.
type RecipeDeletedData struct {
	ID string `json:"id"`
}

// RecipeRatedData is the payload for a recipe.rated event.
type RecipeRatedData struct {
	RecipeID      string  `json:"recipe_id"`
	UserID        string  `json:"user_id"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// Producer publishes recipe domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the recipe service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishRecipeCreated publishes a recipe.created event.
func (p *Producer) PublishRecipeCreated(ctx context.Context, recipe *domain.Recipe) error {
	data := RecipeCreatedData{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Slug:        recipe.Slug,
		Cuisine:     recipe.Cuisine,
		Category:    recipe.Category,
		Difficulty:  recipe.Difficulty,
		DietaryTags: recipe.DietaryTags,
		AuthorID:    recipe.AuthorID,
		Status:      recipe.Status,
	}

	event, err := pkgkafka.NewEvent(TopicRecipeCreated, recipe.ID, AggregateTypeRecipe, SourceRecipeService, data)
	if err != nil {
		return fmt.Errorf("create recipe.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRecipeCreated, event); err != nil {
		return fmt.Errorf("publish recipe.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published recipe.created event",
		slog.String("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug),
	)

	return nil
}

// PublishRecipeUpdated publishes a recipe.updated event.
func (p *Producer) PublishRecipeUpdated(ctx context.Context, recipe *domain.Recipe) error {
	data := RecipeUpdatedData{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Slug:        recipe.Slug,
		Cuisine:     recipe.Cuisine,
		Category:    recipe.Category,
		Difficulty:  recipe.Difficulty,
		DietaryTags: recipe.DietaryTags,
		AuthorID:    recipe.AuthorID,
		Status:      recipe.Status,
	}

	event, err := pkgkafka.NewEvent(TopicRecipeUpdated, recipe.ID, AggregateTypeRecipe, SourceRecipeService, data)
	if err != nil {
		return fmt.Errorf("create recipe.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRecipeUpdated, event); err != nil {
		return fmt.Errorf("publish recipe.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published recipe.updated event",
		slog.String("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug),
	)

	return nil
}

// PublishRecipeDeleted publishes a recipe.deleted event.
func (p *Producer) PublishRecipeDeleted(ctx context.Context, id string) error {
	data := RecipeDeletedData{ID: id}

	event, err := pkgkafka.NewEvent(TopicRecipeDeleted, id, AggregateTypeRecipe, SourceRecipeService, data)
	if err != nil {
		return fmt.Errorf("create recipe.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRecipeDeleted, event); err != nil {
		return fmt.Errorf("publish recipe.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published recipe.deleted event",
		slog.String("recipe_id", id),
	)

	return nil
}

// PublishRecipeRated publishes a recipe.rated event carrying the refreshed
// rating aggregates.
func (p *Producer) PublishRecipeRated(ctx context.Context, rating *domain.Rating, summary *domain.RatingSummary) error {
	data := RecipeRatedData{
		RecipeID:      rating.RecipeID,
		UserID:        rating.UserID,
		Rating:        rating.Rating,
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalCount,
	}

	event, err := pkgkafka.NewEvent(TopicRecipeRated, rating.RecipeID, AggregateTypeRecipe, SourceRecipeService, data)
	if err != nil {
		return fmt.Errorf("create recipe.rated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRecipeRated, event); err != nil {
		return fmt.Errorf("publish recipe.rated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published recipe.rated event",
		slog.String("recipe_id", rating.RecipeID),
		slog.String("user_id", rating.UserID),
		slog.Int("rating", rating.Rating),
	)

	return nil
}
