package domain

// Recommendation reason strings. These are part of the API response contract.
const (
	ReasonSimilarToLiked    = "Similar to recipes you liked"
	ReasonPopular           = "Popular recipe"
	ReasonMatchesPreference = "Matches your preferences"
)

// Recommendation pairs a recipe with its computed score and a human-readable
// explanation. Recommendations are computed fresh per request and never
// persisted.
type Recommendation struct {
	Recipe Recipe  `json:"recipe"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}
