package ratings

import "math"

// Source weights for the composite score. Rotten Tomatoes is weighted
// highest, IMDb lowest.
const (
	WeightRT         = 3
	WeightMetacritic = 2
	WeightIMDB       = 1
)

// Composite computes the weighted mean of the scores that are present,
// normalized to a 0-100 scale. A zero value means the source is absent and
// is excluded from the average rather than dragging it down.
// Returns false when no source is present.
func Composite(rt, metacritic int, imdbRating float64) (float64, bool) {
	var weighted float64
	var totalWeight int

	if rt > 0 {
		weighted += float64(rt * WeightRT)
		totalWeight += WeightRT
	}
	if metacritic > 0 {
		weighted += float64(metacritic * WeightMetacritic)
		totalWeight += WeightMetacritic
	}
	if imdbRating > 0 {
		weighted += imdbRating * 10 * WeightIMDB
		totalWeight += WeightIMDB
	}

	if totalWeight == 0 {
		return 0, false
	}

	// One decimal place is plenty for a movie score
	return math.Round(weighted/float64(totalWeight)*10) / 10, true
}
