package recommend

import (
	"math"
	"sort"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
)

// Feature weights for content-based recipe similarity. They sum to 1.0, so the
// total similarity is bounded in [0, 1] by construction.
const (
	weightCuisine     = 0.4
	weightCategory    = 0.2
	weightDifficulty  = 0.1
	weightDietaryTags = 0.2
	weightCookingTime = 0.1

	// cookingTimeSpread is the minute delta at which the cooking-time term
	// reaches zero.
	cookingTimeSpread = 120.0
)

// Similarity computes a content-based similarity score between two recipes in
// [0, 1] as a weighted sum of independent feature matches: exact cuisine,
// category, and difficulty matches, dietary tag overlap, and cooking-time
// closeness. The function is pure and symmetric.
func Similarity(a, b *domain.Recipe) float64 {
	if a == nil || b == nil {
		return 0
	}

	var similarity float64

	if a.Cuisine == b.Cuisine {
		similarity += weightCuisine
	}
	if a.Category == b.Category {
		similarity += weightCategory
	}
	if a.Difficulty == b.Difficulty {
		similarity += weightDifficulty
	}

	similarity += tagOverlap(a.DietaryTags, b.DietaryTags) * weightDietaryTags

	timeDiff := math.Abs(float64(a.CookingTime - b.CookingTime))
	similarity += math.Max(0, 1-timeDiff/cookingTimeSpread) * weightCookingTime

	// The weights sum to 1.0 on paper, but accumulating them in floats can
	// land a hair above it (0.4+0.2+0.1+0.2+0.1 = 1.0000000000000002).
	return math.Min(similarity, 1)
}

// tagOverlap returns |intersection| / max(|a|, |b|, 1). The 1 in the
// denominator guards the case where both recipes carry no tags.
func tagOverlap(a, b []string) float64 {
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}

	common := 0
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			common++
		}
	}

	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom < 1 {
		denom = 1
	}

	return float64(common) / float64(denom)
}

// RankSimilar scores every candidate against the base recipe and returns the
// top limit candidates by descending similarity. The base recipe itself is
// skipped if present in the candidate list. Ties keep the candidates' input
// order.
func RankSimilar(base *domain.Recipe, candidates []domain.Recipe, limit int) []domain.Recipe {
	if base == nil || limit <= 0 {
		return []domain.Recipe{}
	}

	type scored struct {
		recipe     domain.Recipe
		similarity float64
	}

	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		if candidates[i].ID == base.ID {
			continue
		}
		ranked = append(ranked, scored{
			recipe:     candidates[i],
			similarity: Similarity(base, &candidates[i]),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}

	out := make([]domain.Recipe, 0, limit)
	for _, s := range ranked[:limit] {
		out = append(out, s.recipe)
	}
	return out
}
