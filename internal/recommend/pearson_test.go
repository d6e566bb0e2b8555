package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearson_NoCommonRecipes(t *testing.T) {
	a := map[string]int{"r-1": 5, "r-2": 3}
	b := map[string]int{"r-3": 4, "r-4": 2}

	assert.Zero(t, Pearson(a, b))
}

func TestPearson_ZeroVarianceReturnsZero(t *testing.T) {
	// User a rated every shared recipe identically; the denominator would be
	// zero.
	a := map[string]int{"r-1": 4, "r-2": 4, "r-3": 4}
	b := map[string]int{"r-1": 1, "r-2": 3, "r-3": 5}

	got := Pearson(a, b)
	assert.Zero(t, got)
	assert.False(t, math.IsNaN(got))
}

func TestPearson_PerfectPositiveCorrelation(t *testing.T) {
	a := map[string]int{"r-1": 1, "r-2": 3, "r-3": 5}
	b := map[string]int{"r-1": 2, "r-2": 3, "r-3": 4}

	assert.InDelta(t, 1.0, Pearson(a, b), 1e-9)
}

func TestPearson_PerfectNegativeCorrelation(t *testing.T) {
	a := map[string]int{"r-1": 1, "r-2": 3, "r-3": 5}
	b := map[string]int{"r-1": 5, "r-2": 3, "r-3": 1}

	assert.InDelta(t, -1.0, Pearson(a, b), 1e-9)
}

func TestPearson_IgnoresUnsharedRecipes(t *testing.T) {
	a := map[string]int{"r-1": 1, "r-2": 3, "r-3": 5, "only-a": 1}
	b := map[string]int{"r-1": 2, "r-2": 3, "r-3": 4, "only-b": 5}

	assert.InDelta(t, 1.0, Pearson(a, b), 1e-9)
}

func TestPearson_ResultBounded(t *testing.T) {
	a := map[string]int{"r-1": 2, "r-2": 5, "r-3": 1, "r-4": 4}
	b := map[string]int{"r-1": 3, "r-2": 2, "r-3": 5, "r-4": 4}

	got := Pearson(a, b)
	assert.GreaterOrEqual(t, got, -1.0)
	assert.LessOrEqual(t, got, 1.0)
}

func TestPearson_EmptyMaps(t *testing.T) {
	assert.Zero(t, Pearson(nil, nil))
	assert.Zero(t, Pearson(map[string]int{}, map[string]int{"r-1": 5}))
}
