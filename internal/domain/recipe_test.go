package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Recipe Status Validation Tests
// ============================================================================

func TestValidStatuses_ContainsAll(t *testing.T) {
	expected := []string{RecipeStatusDraft, RecipeStatusPublished, RecipeStatusArchived}
	assert.ElementsMatch(t, expected, ValidStatuses())
}

func TestIsValidStatus_ValidStatuses(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, IsValidStatus(s), "expected %q to be valid", s)
	}
}

func TestIsValidStatus_Invalid(t *testing.T) {
	assert.False(t, IsValidStatus("unknown"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("PUBLISHED"))
}

// ============================================================================
// Difficulty and Category Validation Tests
// ============================================================================

func TestIsValidDifficulty(t *testing.T) {
	for _, d := range ValidDifficulties() {
		assert.True(t, IsValidDifficulty(d), "expected %q to be valid", d)
	}
	assert.False(t, IsValidDifficulty("brutal"))
	assert.False(t, IsValidDifficulty(""))
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range ValidCategories() {
		assert.True(t, IsValidCategory(c), "expected %q to be valid", c)
	}
	assert.False(t, IsValidCategory("midnight-snack"))
	assert.False(t, IsValidCategory(""))
}

// ============================================================================
// Recipe Behavior Tests
// ============================================================================

func TestHasDietaryTag(t *testing.T) {
	r := &Recipe{DietaryTags: []string{TagVegan, TagGlutenFree}}

	assert.True(t, r.HasDietaryTag(TagVegan))
	assert.True(t, r.HasDietaryTag(TagGlutenFree))
	assert.False(t, r.HasDietaryTag(TagKeto))
}

func TestHasDietaryTag_NoTags(t *testing.T) {
	r := &Recipe{}
	assert.False(t, r.HasDietaryTag(TagVegan))
}

func TestIsPublished(t *testing.T) {
	assert.True(t, (&Recipe{Status: RecipeStatusPublished}).IsPublished())
	assert.False(t, (&Recipe{Status: RecipeStatusDraft}).IsPublished())
	assert.False(t, (&Recipe{Status: RecipeStatusArchived}).IsPublished())
}
