package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/internal/repository"
	"github.com/prabesh187/recipe-sharing-platform/pkg/database"
	apperrors "github.com/prabesh187/recipe-sharing-platform/pkg/errors"
)

const recipeColumns = `id, title, slug, description, cuisine, category, difficulty, dietary_tags,
	cooking_time, prep_time, servings, author_id, average_rating, total_ratings,
	views, favorites, status, is_premium, price, created_at, updated_at`

// RecipeRepository implements repository.RecipeRepository using PostgreSQL.
type RecipeRepository struct {
	db database.DBTX
}

// NewRecipeRepository creates a new PostgreSQL-backed recipe repository.
func NewRecipeRepository(db database.DBTX) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts a new recipe into the database.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (id, title, slug, description, cuisine, category, difficulty, dietary_tags,
			cooking_time, prep_time, servings, author_id, average_rating, total_ratings,
			views, favorites, status, is_premium, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.Exec(ctx, query,
		recipe.ID,
		recipe.Title,
		recipe.Slug,
		recipe.Description,
		recipe.Cuisine,
		recipe.Category,
		recipe.Difficulty,
		recipe.DietaryTags,
		recipe.CookingTime,
		recipe.PrepTime,
		recipe.Servings,
		recipe.AuthorID,
		recipe.AverageRating,
		recipe.TotalRatings,
		recipe.Views,
		recipe.Favorites,
		recipe.Status,
		recipe.IsPremium,
		recipe.Price,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("recipe", "slug", recipe.Slug)
		}
		return fmt.Errorf("insert recipe: %w", err)
	}

	return nil
}

// GetByID retrieves a recipe by its ID.
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE id = $1`, recipeColumns)
	return r.scanRecipe(ctx, query, id)
}

// GetBySlug retrieves a recipe by its slug.
func (r *RecipeRepository) GetBySlug(ctx context.Context, slug string) (*domain.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE slug = $1`, recipeColumns)
	return r.scanRecipe(ctx, query, slug)
}

// List returns recipes matching the given filter with the total count.
func (r *RecipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Cuisine != nil {
		conditions = append(conditions, fmt.Sprintf("cuisine = $%d", argIndex))
		args = append(args, *filter.Cuisine)
		argIndex++
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.Difficulty != nil {
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", argIndex))
		args = append(args, *filter.Difficulty)
		argIndex++
	}

	if filter.DietaryTag != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(dietary_tags)", argIndex))
		args = append(args, *filter.DietaryTag)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", argIndex))
		args = append(args, *filter.AuthorID)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() returns the total count in the same query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM recipes
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		recipeColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var (
		recipes    []domain.Recipe
		totalCount int
	)

	for rows.Next() {
		var recipe domain.Recipe
		if err := scanRecipeFields(rows, &recipe, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan recipe row: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate recipe rows: %w", err)
	}

	if recipes == nil {
		recipes = []domain.Recipe{}
	}

	return recipes, totalCount, nil
}

// ListPublished returns all published recipes ordered by creation time.
func (r *RecipeRepository) ListPublished(ctx context.Context) ([]domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes
		WHERE status = $1
		ORDER BY created_at DESC`, recipeColumns)

	return r.queryRecipes(ctx, query, domain.RecipeStatusPublished)
}

// ListPublishedSince returns published recipes created at or after the cutoff.
func (r *RecipeRepository) ListPublishedSince(ctx context.Context, cutoff time.Time) ([]domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes
		WHERE status = $1 AND created_at >= $2
		ORDER BY created_at DESC`, recipeColumns)

	return r.queryRecipes(ctx, query, domain.RecipeStatusPublished, cutoff)
}

// Update modifies an existing recipe in the database.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE recipes
		SET title = $1, slug = $2, description = $3, cuisine = $4, category = $5,
		    difficulty = $6, dietary_tags = $7, cooking_time = $8, prep_time = $9,
		    servings = $10, status = $11, is_premium = $12, price = $13, updated_at = $14
		WHERE id = $15`

	ct, err := r.db.Exec(ctx, query,
		recipe.Title,
		recipe.Slug,
		recipe.Description,
		recipe.Cuisine,
		recipe.Category,
		recipe.Difficulty,
		recipe.DietaryTags,
		recipe.CookingTime,
		recipe.PrepTime,
		recipe.Servings,
		recipe.Status,
		recipe.IsPremium,
		recipe.Price,
		recipe.UpdatedAt,
		recipe.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("recipe", "slug", recipe.Slug)
		}
		return fmt.Errorf("update recipe: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("recipe", recipe.ID)
	}

	return nil
}

// Delete removes a recipe from the database by its ID.
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM recipes WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("recipe", id)
	}

	return nil
}

// IncrementViews bumps the view counter for a recipe.
func (r *RecipeRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE recipes SET views = views + 1 WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("recipe", id)
	}

	return nil
}

// AdjustFavorites moves the favorite counter by delta, clamped at zero.
func (r *RecipeRepository) AdjustFavorites(ctx context.Context, id string, delta int) error {
	query := `UPDATE recipes SET favorites = GREATEST(favorites + $1, 0) WHERE id = $2`

	ct, err := r.db.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjust favorites: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("recipe", id)
	}

	return nil
}

// queryRecipes executes a query expected to return recipe rows without a count column.
func (r *RecipeRepository) queryRecipes(ctx context.Context, query string, args ...any) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var recipe domain.Recipe
		if err := scanRecipeFields(rows, &recipe); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}

	if recipes == nil {
		recipes = []domain.Recipe{}
	}

	return recipes, nil
}

// scanRecipe executes a query expected to return a single recipe row.
func (r *RecipeRepository) scanRecipe(ctx context.Context, query string, args ...any) (*domain.Recipe, error) {
	var recipe domain.Recipe

	row := r.db.QueryRow(ctx, query, args...)
	if err := scanRecipeFields(row, &recipe); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}

	return &recipe, nil
}

// scanRecipeFields scans the standard recipe column set into the given recipe,
// followed by any extra scan targets (e.g. a trailing count column).
func scanRecipeFields(row pgx.Row, recipe *domain.Recipe, extra ...any) error {
	targets := []any{
		&recipe.ID,
		&recipe.Title,
		&recipe.Slug,
		&recipe.Description,
		&recipe.Cuisine,
		&recipe.Category,
		&recipe.Difficulty,
		&recipe.DietaryTags,
		&recipe.CookingTime,
		&recipe.PrepTime,
		&recipe.Servings,
		&recipe.AuthorID,
		&recipe.AverageRating,
		&recipe.TotalRatings,
		&recipe.Views,
		&recipe.Favorites,
		&recipe.Status,
		&recipe.IsPremium,
		&recipe.Price,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	}
	targets = append(targets, extra...)
	return row.Scan(targets...)
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
