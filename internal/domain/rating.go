package domain

import (
	"time"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating represents a user's rating of a recipe. A user can rate a recipe at
// most once; re-rating replaces the previous value.
type Rating struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary contains aggregate rating statistics for a recipe.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}

// UserRating is the flat (recipe, rating) pair the recommendation scorer
// consumes, reduced from a user's full rating history.
type UserRating struct {
	RecipeID string `json:"recipe_id"`
	Rating   int    `json:"rating"`
}
