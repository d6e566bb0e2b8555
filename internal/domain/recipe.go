package domain

import (
	"time"
)

// Recipe status constants.
const (
	RecipeStatusDraft     = "draft"
	RecipeStatusPublished = "published"
	RecipeStatusArchived  = "archived"
)

// Recipe difficulty constants.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe category constants.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategoryDessert   = "dessert"
	CategorySnack     = "snack"
	CategoryAppetizer = "appetizer"
	CategoryBeverage  = "beverage"
)

// Recipe represents a recipe in the catalog. AverageRating, TotalRatings,
// Views, and Favorites are aggregates maintained by the persistence layer.
type Recipe struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Cuisine       string    `json:"cuisine"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	DietaryTags   []string  `json:"dietary_tags,omitempty"`
	CookingTime   int       `json:"cooking_time"`
	PrepTime      int       `json:"prep_time"`
	Servings      int       `json:"servings"`
	AuthorID      string    `json:"author_id"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	Views         int       `json:"views"`
	Favorites     int       `json:"favorites"`
	Status        string    `json:"status"`
	IsPremium     bool      `json:"is_premium"`
	Price         int64     `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidStatuses returns the set of valid recipe statuses.
func ValidStatuses() []string {
	return []string{RecipeStatusDraft, RecipeStatusPublished, RecipeStatusArchived}
}

// IsValidStatus checks whether the given status string is a valid recipe status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidDifficulties returns the set of valid difficulty levels.
func ValidDifficulties() []string {
	return []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// IsValidDifficulty checks whether the given difficulty string is valid.
func IsValidDifficulty(difficulty string) bool {
	for _, d := range ValidDifficulties() {
		if d == difficulty {
			return true
		}
	}
	return false
}

// ValidCategories returns the set of valid recipe categories.
func ValidCategories() []string {
	return []string{
		CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryDessert,
		CategorySnack, CategoryAppetizer, CategoryBeverage,
	}
}

// IsValidCategory checks whether the given category string is valid.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// HasDietaryTag reports whether the recipe carries the given dietary tag.
func (r *Recipe) HasDietaryTag(tag string) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsPublished reports whether the recipe is visible to other users.
func (r *Recipe) IsPublished() bool {
	return r.Status == RecipeStatusPublished
}
