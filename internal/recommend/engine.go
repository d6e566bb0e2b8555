// Package recommend implements the recipe recommendation scorer: content-based
// similarity, user-to-user Pearson correlation, hybrid recommendation
// assembly, and trending ranking. All functions are pure and operate on data
// already materialized in memory; they perform no I/O and hold no state.
package recommend

import (
	"sort"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
)

// Scoring constants for the hybrid assembly. A rating at or above likedRating
// marks a recipe as "liked" and seeds the content-based pass. The popularity
// and preference passes insert flat boosts scaled from the candidate's average
// rating.
const (
	likedRatingThreshold  = 4
	popularFallbackSize   = 5
	popularScoreFactor    = 0.5
	preferenceScoreFactor = 0.7
)

// RecommendInput carries everything the scorer needs, already materialized in
// memory by the caller. The scorer performs no I/O.
type RecommendInput struct {
	// Ratings is the user's full rating history.
	Ratings []domain.UserRating

	// Preferences is the user's declared taste profile. May be nil or empty.
	Preferences *domain.Preferences

	// Corpus is the full set of published recipes.
	Corpus []domain.Recipe

	// Limit caps the number of returned recommendations.
	Limit int
}

// accumulator holds at most one entry per recipe ID. Insertion order is kept
// so that equal-score entries sort deterministically.
type accumulator struct {
	entries map[string]*domain.Recommendation
	order   []string
}

func newAccumulator() *accumulator {
	return &accumulator{entries: make(map[string]*domain.Recommendation)}
}

// add accumulates a content-based contribution: an existing entry's score
// grows, a new entry is inserted.
func (acc *accumulator) add(recipe domain.Recipe, score float64, reason string) {
	if entry, ok := acc.entries[recipe.ID]; ok {
		entry.Score += score
		return
	}
	acc.insert(recipe, score, reason)
}

// insertIfAbsent inserts an entry only when the recipe is not already present.
// Used by the popularity and preference passes, which never overwrite
// content-based entries.
func (acc *accumulator) insertIfAbsent(recipe domain.Recipe, score float64, reason string) {
	if _, ok := acc.entries[recipe.ID]; ok {
		return
	}
	acc.insert(recipe, score, reason)
}

func (acc *accumulator) insert(recipe domain.Recipe, score float64, reason string) {
	acc.entries[recipe.ID] = &domain.Recommendation{
		Recipe: recipe,
		Score:  score,
		Reason: reason,
	}
	acc.order = append(acc.order, recipe.ID)
}

// ranked returns all entries sorted by descending score. The sort is stable
// over insertion order.
func (acc *accumulator) ranked() []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(acc.order))
	for _, id := range acc.order {
		out = append(out, *acc.entries[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Recommend produces a ranked recommendation list for a user by merging three
// passes into a single per-recipe accumulator:
//
//  1. Content-based: for every liked rating (>= 4) and every unrated candidate,
//     accumulate Similarity(liked, candidate) × rating. A candidate similar to
//     several liked recipes accumulates a higher score.
//  2. Popularity fallback: the 5 unrated recipes with the highest
//     averageRating × totalRatings product are inserted (if absent) with score
//     averageRating × 0.5.
//  3. Preference match: if the user declared any preferences, unrated recipes
//     matching both the dietary and cuisine constraints (each vacuous when the
//     corresponding set is empty) are inserted (if absent) with score
//     averageRating × 0.7.
//
// Recipes the user has already rated never appear in the output. The result is
// sorted by descending score and truncated to input.Limit; it may be shorter
// than the limit when few unrated candidates exist.
func Recommend(input RecommendInput) []domain.Recommendation {
	rated := make(map[string]int, len(input.Ratings))
	for _, r := range input.Ratings {
		rated[r.RecipeID] = r.Rating
	}

	byID := make(map[string]*domain.Recipe, len(input.Corpus))
	unrated := make([]domain.Recipe, 0, len(input.Corpus))
	for i := range input.Corpus {
		byID[input.Corpus[i].ID] = &input.Corpus[i]
		if _, ok := rated[input.Corpus[i].ID]; !ok {
			unrated = append(unrated, input.Corpus[i])
		}
	}

	acc := newAccumulator()

	// Pass 1: content-based expansion over liked recipes.
	for _, userRating := range input.Ratings {
		if userRating.Rating < likedRatingThreshold {
			continue
		}
		liked, ok := byID[userRating.RecipeID]
		if !ok {
			continue
		}
		for i := range unrated {
			similarity := Similarity(liked, &unrated[i])
			contribution := similarity * float64(userRating.Rating)
			acc.add(unrated[i], contribution, domain.ReasonSimilarToLiked)
		}
	}

	// Pass 2: popularity fallback over unrated recipes.
	for _, recipe := range topByPopularity(unrated, popularFallbackSize) {
		acc.insertIfAbsent(recipe, recipe.AverageRating*popularScoreFactor, domain.ReasonPopular)
	}

	// Pass 3: preference-match injection.
	if !input.Preferences.IsEmpty() {
		for i := range unrated {
			if !input.Preferences.PrefersTagOf(&unrated[i]) {
				continue
			}
			if !input.Preferences.PrefersCuisineOf(&unrated[i]) {
				continue
			}
			acc.insertIfAbsent(unrated[i], unrated[i].AverageRating*preferenceScoreFactor, domain.ReasonMatchesPreference)
		}
	}

	ranked := acc.ranked()
	if input.Limit > 0 && len(ranked) > input.Limit {
		ranked = ranked[:input.Limit]
	}
	return ranked
}

// popularityWeight favors recipes with many ratings over recipes with a single
// high rating: a lone 5-star review should not outrank hundreds of 4.5-star
// reviews.
func popularityWeight(r *domain.Recipe) float64 {
	return r.AverageRating * float64(r.TotalRatings)
}

// topByPopularity returns the n recipes with the highest popularity weight,
// preserving input order on ties.
func topByPopularity(recipes []domain.Recipe, n int) []domain.Recipe {
	sorted := make([]domain.Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return popularityWeight(&sorted[i]) > popularityWeight(&sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
