package domain

import (
	"time"
)

// Known dietary tags. Recipes and user preferences share this vocabulary.
const (
	TagVegetarian    = "vegetarian"
	TagVegan         = "vegan"
	TagGlutenFree    = "gluten-free"
	TagDairyFree     = "dairy-free"
	TagKeto          = "keto"
	TagPaleo         = "paleo"
	TagLowCarb       = "low-carb"
	TagMediterranean = "mediterranean"
)

// ValidDietaryTags returns the set of recognized dietary tags.
func ValidDietaryTags() []string {
	return []string{
		TagVegetarian, TagVegan, TagGlutenFree, TagDairyFree,
		TagKeto, TagPaleo, TagLowCarb, TagMediterranean,
	}
}

// IsValidDietaryTag checks whether the given tag is recognized.
func IsValidDietaryTag(tag string) bool {
	for _, t := range ValidDietaryTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// Preferences holds a user's declared taste preferences. Both sets are
// optional; an empty set places no constraint on matching.
type Preferences struct {
	UserID      string    `json:"user_id"`
	DietaryTags []string  `json:"dietary_tags,omitempty"`
	Cuisines    []string  `json:"cuisines,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsEmpty reports whether the user has declared no preferences at all.
func (p *Preferences) IsEmpty() bool {
	return p == nil || (len(p.DietaryTags) == 0 && len(p.Cuisines) == 0)
}

// PrefersTagOf reports whether the recipe carries at least one of the user's
// preferred dietary tags. Vacuously true when no dietary tags are declared.
func (p *Preferences) PrefersTagOf(r *Recipe) bool {
	if p == nil || len(p.DietaryTags) == 0 {
		return true
	}
	for _, want := range p.DietaryTags {
		if r.HasDietaryTag(want) {
			return true
		}
	}
	return false
}

// PrefersCuisineOf reports whether the recipe's cuisine is in the user's
// preferred set. Vacuously true when no cuisines are declared.
func (p *Preferences) PrefersCuisineOf(r *Recipe) bool {
	if p == nil || len(p.Cuisines) == 0 {
		return true
	}
	for _, c := range p.Cuisines {
		if c == r.Cuisine {
			return true
		}
	}
	return false
}
