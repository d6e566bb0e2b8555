package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/pkg/database"
)

// RatingRepository implements rating persistence operations using PostgreSQL.
type RatingRepository struct {
	db database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(db database.DBTX) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts a rating or replaces the user's previous rating of the same
// recipe, then refreshes the recipe's rating aggregates. Both statements run
// in one transaction so the aggregates never drift from the rating rows.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rating transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO ratings (id, recipe_id, user_id, rating, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (recipe_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review, updated_at = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, upsert,
		rating.ID,
		rating.RecipeID,
		rating.UserID,
		rating.Rating,
		rating.Review,
		rating.CreatedAt,
		rating.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	refresh := `
		UPDATE recipes
		SET average_rating = agg.avg_rating,
		    total_ratings  = agg.total,
		    updated_at     = now()
		FROM (
			SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total
			FROM ratings
			WHERE recipe_id = $1
		) AS agg
		WHERE recipes.id = $1`

	if _, err := tx.Exec(ctx, refresh, rating.RecipeID); err != nil {
		return fmt.Errorf("refresh rating aggregates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rating transaction: %w", err)
	}

	return nil
}

// ListByRecipe returns paginated ratings for a recipe along with the total count.
func (r *RatingRepository) ListByRecipe(ctx context.Context, recipeID string, page, perPage int) ([]domain.Rating, int, error) {
	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT id, recipe_id, user_id, rating, review, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM ratings
		WHERE recipe_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recipeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var (
		ratings    []domain.Rating
		totalCount int
	)

	for rows.Next() {
		var rt domain.Rating

		if err := rows.Scan(
			&rt.ID,
			&rt.RecipeID,
			&rt.UserID,
			&rt.Rating,
			&rt.Review,
			&rt.CreatedAt,
			&rt.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rating row: %w", err)
		}

		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rating rows: %w", err)
	}

	if ratings == nil {
		ratings = []domain.Rating{}
	}

	return ratings, totalCount, nil
}

// ListByUser returns the flat (recipe, rating) history for a user.
func (r *RatingRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserRating, error) {
	query := `
		SELECT recipe_id, rating
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	defer rows.Close()

	var ratings []domain.UserRating
	for rows.Next() {
		var ur domain.UserRating
		if err := rows.Scan(&ur.RecipeID, &ur.Rating); err != nil {
			return nil, fmt.Errorf("scan user rating row: %w", err)
		}
		ratings = append(ratings, ur)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rating rows: %w", err)
	}

	if ratings == nil {
		ratings = []domain.UserRating{}
	}

	return ratings, nil
}

// GetSummary returns the aggregate rating statistics for a recipe.
func (r *RatingRepository) GetSummary(ctx context.Context, recipeID string) (*domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM ratings
		WHERE recipe_id = $1`

	var summary domain.RatingSummary

	err := r.db.QueryRow(ctx, query, recipeID).Scan(
		&summary.AverageRating,
		&summary.TotalCount,
	)
	if err != nil {
		return nil, fmt.Errorf("get rating summary: %w", err)
	}

	// Round average rating to one decimal place.
	summary.AverageRating = math.Round(summary.AverageRating*10) / 10

	return &summary, nil
}
