package score

import (
	"math"

	"github.com/ppiankov/verbatim/internal/model"
)

// Average returns the mean similarity score over fragments, skipping
// missing and degenerate scores. An empty or all-missing input averages to
// 0, never NaN.
func Average(fragments []model.Fragment) float64 {
	sum := 0.0
	count := 0

	for _, f := range fragments {
		if f.SimilarityScore == nil {
			continue
		}
		v := *f.SimilarityScore
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
