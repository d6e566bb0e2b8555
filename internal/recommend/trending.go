package recommend

import (
	"sort"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
)

// Trending score weights over engagement signals. Kept as an explicit weight
// table with no hidden normalization, matching the similarity function.
const (
	trendingWeightViews     = 0.3
	trendingWeightFavorites = 0.4
	trendingWeightRatings   = 0.3
)

// TrendingScore computes the weighted engagement score used to rank recent
// recipes: views×0.3 + favorites×0.4 + totalRatings×0.3.
func TrendingScore(r *domain.Recipe) float64 {
	return float64(r.Views)*trendingWeightViews +
		float64(r.Favorites)*trendingWeightFavorites +
		float64(r.TotalRatings)*trendingWeightRatings
}

// RankTrending sorts the given recipes by descending trending score and
// returns the top limit. The caller is responsible for restricting the input
// to the desired recency window. Ties keep input order.
func RankTrending(recipes []domain.Recipe, limit int) []domain.Recipe {
	sorted := make([]domain.Recipe, len(recipes))
	copy(sorted, recipes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return TrendingScore(&sorted[i]) > TrendingScore(&sorted[j])
	})

	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit]
}
