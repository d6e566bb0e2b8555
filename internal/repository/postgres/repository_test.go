package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/internal/repository"
	"github.com/prabesh187/recipe-sharing-platform/pkg/database"
	apperrors "github.com/prabesh187/recipe-sharing-platform/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// ─── Recipe column definitions ──────────────────────────────────────────────

var recipeTestColumns = []string{
	"id", "title", "slug", "description", "cuisine", "category", "difficulty",
	"dietary_tags", "cooking_time", "prep_time", "servings", "author_id",
	"average_rating", "total_ratings", "views", "favorites", "status",
	"is_premium", "price", "created_at", "updated_at",
}

var recipeTestColumnsWithCount = append(append([]string{}, recipeTestColumns...), "total_count")

func sampleRecipe() domain.Recipe {
	return domain.Recipe{
		ID:            "recipe-1",
		Title:         "Spaghetti alla Carbonara",
		Slug:          "spaghetti-alla-carbonara",
		Description:   "Classic Roman pasta with eggs and guanciale.",
		Cuisine:       "italian",
		Category:      domain.CategoryDinner,
		Difficulty:    domain.DifficultyMedium,
		DietaryTags:   []string{},
		CookingTime:   25,
		PrepTime:      10,
		Servings:      4,
		AuthorID:      "user-1",
		AverageRating: 4.5,
		TotalRatings:  12,
		Views:         340,
		Favorites:     28,
		Status:        domain.RecipeStatusPublished,
		IsPremium:     false,
		Price:         0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func recipeRow(r domain.Recipe) []any {
	return []any{
		r.ID, r.Title, r.Slug, r.Description, r.Cuisine, r.Category, r.Difficulty,
		r.DietaryTags, r.CookingTime, r.PrepTime, r.Servings, r.AuthorID,
		r.AverageRating, r.TotalRatings, r.Views, r.Favorites, r.Status,
		r.IsPremium, r.Price, r.CreatedAt, r.UpdatedAt,
	}
}

// ─── Rating column definitions ──────────────────────────────────────────────

var ratingColumnsWithCount = []string{
	"id", "recipe_id", "user_id", "rating", "review",
	"created_at", "updated_at", "total_count",
}

func sampleRating() domain.Rating {
	return domain.Rating{
		ID:        "rating-1",
		RecipeID:  "recipe-1",
		UserID:    "user-1",
		Rating:    5,
		Review:    "Perfect weeknight dinner.",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// RecipeRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestRecipeRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	mock.ExpectExec("INSERT INTO recipes").
		WithArgs(
			r.ID, r.Title, r.Slug, r.Description, r.Cuisine, r.Category, r.Difficulty,
			r.DietaryTags, r.CookingTime, r.PrepTime, r.Servings, r.AuthorID,
			r.AverageRating, r.TotalRatings, r.Views, r.Favorites, r.Status,
			r.IsPremium, r.Price, r.CreatedAt, r.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &r)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	mock.ExpectExec("INSERT INTO recipes").
		WithArgs(
			r.ID, r.Title, r.Slug, r.Description, r.Cuisine, r.Category, r.Difficulty,
			r.DietaryTags, r.CookingTime, r.PrepTime, r.Servings, r.AuthorID,
			r.AverageRating, r.TotalRatings, r.Views, r.Favorites, r.Status,
			r.IsPremium, r.Price, r.CreatedAt, r.UpdatedAt,
		).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), &r)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	mock.ExpectQuery("SELECT .+ FROM recipes WHERE id").
		WithArgs(r.ID).
		WillReturnRows(
			pgxmock.NewRows(recipeTestColumns).AddRow(recipeRow(r)...),
		)

	result, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, result.ID)
	assert.Equal(t, r.Title, result.Title)
	assert.Equal(t, r.Cuisine, result.Cuisine)
	assert.Equal(t, r.AverageRating, result.AverageRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM recipes WHERE id").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_GetBySlug_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	mock.ExpectQuery("SELECT .+ FROM recipes WHERE slug").
		WithArgs(r.Slug).
		WillReturnRows(
			pgxmock.NewRows(recipeTestColumns).AddRow(recipeRow(r)...),
		)

	result, err := repo.GetBySlug(context.Background(), r.Slug)
	require.NoError(t, err)
	assert.Equal(t, r.ID, result.ID)
	assert.Equal(t, r.Slug, result.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_List_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	row := append(recipeRow(r), 1) // total_count = 1

	filter := repository.RecipeFilter{Page: 1, PerPage: 20}

	mock.ExpectQuery("SELECT .+ FROM recipes").
		WithArgs(20, 0). // limit, offset
		WillReturnRows(
			pgxmock.NewRows(recipeTestColumnsWithCount).AddRow(row...),
		)

	recipes, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, r.ID, recipes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_List_WithFilters(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	row := append(recipeRow(r), 1)

	filter := repository.RecipeFilter{
		Cuisine:    strPtr("italian"),
		DietaryTag: strPtr(domain.TagVegetarian),
		Status:     strPtr(domain.RecipeStatusPublished),
		Page:       1,
		PerPage:    10,
	}

	// cuisine=$1, dietary_tag=$2, status=$3, LIMIT $4 OFFSET $5
	mock.ExpectQuery("SELECT .+ FROM recipes").
		WithArgs("italian", domain.TagVegetarian, domain.RecipeStatusPublished, 10, 0).
		WillReturnRows(
			pgxmock.NewRows(recipeTestColumnsWithCount).AddRow(row...),
		)

	recipes, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_ListPublished_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r1 := sampleRecipe()
	r2 := sampleRecipe()
	r2.ID = "recipe-2"
	r2.Slug = "tiramisu"

	mock.ExpectQuery("SELECT .+ FROM recipes").
		WithArgs(domain.RecipeStatusPublished).
		WillReturnRows(
			pgxmock.NewRows(recipeTestColumns).
				AddRow(recipeRow(r1)...).
				AddRow(recipeRow(r2)...),
		)

	recipes, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	assert.Equal(t, r1.ID, recipes[0].ID)
	assert.Equal(t, r2.ID, recipes[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_ListPublishedSince_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	cutoff := now.AddDate(0, 0, -7)
	mock.ExpectQuery("SELECT .+ FROM recipes").
		WithArgs(domain.RecipeStatusPublished, cutoff).
		WillReturnRows(pgxmock.NewRows(recipeTestColumns))

	recipes, err := repo.ListPublishedSince(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, []domain.Recipe{}, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_Update_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	mock.ExpectExec("UPDATE recipes").
		WithArgs(
			r.Title, r.Slug, r.Description, r.Cuisine, r.Category, r.Difficulty,
			r.DietaryTags, r.CookingTime, r.PrepTime, r.Servings, r.Status,
			r.IsPremium, r.Price,
			pgxmock.AnyArg(), // updated_at is set inside Update
			r.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), &r)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	r := sampleRecipe()
	r.ID = "nonexistent-id"
	mock.ExpectExec("UPDATE recipes").
		WithArgs(
			r.Title, r.Slug, r.Description, r.Cuisine, r.Category, r.Difficulty,
			r.DietaryTags, r.CookingTime, r.PrepTime, r.Servings, r.Status,
			r.IsPremium, r.Price,
			pgxmock.AnyArg(),
			r.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &r)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectExec("DELETE FROM recipes WHERE").
		WithArgs("recipe-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "recipe-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectExec("DELETE FROM recipes WHERE").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_IncrementViews_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectExec("UPDATE recipes SET views").
		WithArgs("recipe-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.IncrementViews(context.Background(), "recipe-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_IncrementViews_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectExec("UPDATE recipes SET views").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.IncrementViews(context.Background(), "missing-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_AdjustFavorites_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectExec("UPDATE recipes SET favorites").
		WithArgs(1, "recipe-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.AdjustFavorites(context.Background(), "recipe-1", 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_AdjustFavorites_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRecipeRepository(mock)

	mock.ExpectExec("UPDATE recipes SET favorites").
		WithArgs(-1, "missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.AdjustFavorites(context.Background(), "missing-id", -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// RatingRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestRatingRepository_Upsert_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rt := sampleRating()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(rt.ID, rt.RecipeID, rt.UserID, rt.Rating, rt.Review, rt.CreatedAt, rt.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE recipes").
		WithArgs(rt.RecipeID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), &rt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Upsert_InsertFails_RollsBack(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rt := sampleRating()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(rt.ID, rt.RecipeID, rt.UserID, rt.Rating, rt.Review, rt.CreatedAt, rt.UpdatedAt).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), &rt)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByRecipe_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rt := sampleRating()
	row := []any{rt.ID, rt.RecipeID, rt.UserID, rt.Rating, rt.Review, rt.CreatedAt, rt.UpdatedAt, 1}

	mock.ExpectQuery("SELECT .+ FROM ratings WHERE recipe_id").
		WithArgs("recipe-1", 20, 0). // recipeID, limit, offset
		WillReturnRows(
			pgxmock.NewRows(ratingColumnsWithCount).AddRow(row...),
		)

	ratings, total, err := repo.ListByRecipe(context.Background(), "recipe-1", 1, 20)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, rt.Rating, ratings[0].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByUser_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT recipe_id, rating FROM ratings WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(
			pgxmock.NewRows([]string{"recipe_id", "rating"}).
				AddRow("recipe-1", 5).
				AddRow("recipe-2", 3),
		)

	ratings, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRating{
		{RecipeID: "recipe-1", Rating: 5},
		{RecipeID: "recipe-2", Rating: 3},
	}, ratings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByUser_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT recipe_id, rating FROM ratings WHERE user_id").
		WithArgs("user-new").
		WillReturnRows(pgxmock.NewRows([]string{"recipe_id", "rating"}))

	ratings, err := repo.ListByUser(context.Background(), "user-new")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRating{}, ratings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_GetSummary_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("recipe-1").
		WillReturnRows(
			pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.26, 15),
		)

	summary, err := repo.GetSummary(context.Background(), "recipe-1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.AverageRating) // rounded to 1 decimal
	assert.Equal(t, 15, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_GetSummary_NoRatings(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("recipe-empty").
		WillReturnRows(
			pgxmock.NewRows([]string{"avg", "count"}).AddRow(0.0, 0),
		)

	summary, err := repo.GetSummary(context.Background(), "recipe-empty")
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, 0, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// PreferenceRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestPreferenceRepository_Get_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPreferenceRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM user_preferences WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(
			pgxmock.NewRows([]string{"user_id", "dietary_tags", "cuisines", "updated_at"}).
				AddRow("user-1", []string{domain.TagVegan}, []string{"thai", "indian"}, now),
		)

	prefs, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", prefs.UserID)
	assert.Equal(t, []string{domain.TagVegan}, prefs.DietaryTags)
	assert.Equal(t, []string{"thai", "indian"}, prefs.Cuisines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_Get_NoRow_ReturnsEmpty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPreferenceRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM user_preferences WHERE user_id").
		WithArgs("user-new").
		WillReturnError(pgx.ErrNoRows)

	prefs, err := repo.Get(context.Background(), "user-new")
	require.NoError(t, err)
	assert.Equal(t, "user-new", prefs.UserID)
	assert.True(t, prefs.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_Put_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPreferenceRepository(mock)

	prefs := domain.Preferences{
		UserID:      "user-1",
		DietaryTags: []string{domain.TagVegetarian},
		Cuisines:    []string{"italian"},
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO user_preferences").
		WithArgs(prefs.UserID, prefs.DietaryTags, prefs.Cuisines, prefs.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Put(context.Background(), &prefs)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
