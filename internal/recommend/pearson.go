package recommend

import (
	"math"
)

// Pearson computes the Pearson correlation coefficient between two users'
// rating maps (recipe ID → rating), considering only recipes rated by both
// users. It returns 0 when the co-rated set is empty or when either user's
// co-rated scores have zero variance, rather than dividing by zero.
//
// The result is in [-1, 1]. The recommendation pipeline does not currently
// fold this signal into ranked output; it is kept as a standalone utility for
// user-to-user correlation.
func Pearson(a, b map[string]int) float64 {
	var (
		n                    int
		sumA, sumB           float64
		sumASq, sumBSq, pSum float64
	)

	for recipeID, ra := range a {
		rb, ok := b[recipeID]
		if !ok {
			continue
		}
		x, y := float64(ra), float64(rb)
		n++
		sumA += x
		sumB += y
		sumASq += x * x
		sumBSq += y * y
		pSum += x * y
	}

	if n == 0 {
		return 0
	}

	num := pSum - sumA*sumB/float64(n)
	den := math.Sqrt((sumASq - sumA*sumA/float64(n)) * (sumBSq - sumB*sumB/float64(n)))
	if den == 0 {
		return 0
	}

	return num / den
}
