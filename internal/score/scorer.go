package score

import (
	"fmt"
	"math"
)

// VerifiedThreshold is the calibrated percentage at or above which a
// fragment counts as verified. Equality at the threshold verifies.
const VerifiedThreshold = 70.0

// Scorer maps raw match ratios to calibrated, display-ready percentages
// and the verified classification
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score converts a raw ratio in [0, 1] to a calibrated display percentage
// and the verified flag. Degenerate inputs (NaN, Inf, negative) normalize
// to 0; ratios above 1 clamp to 100.
func (s *Scorer) Score(ratio float64) (float64, bool) {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	display := Calibrate(ratio * 100)
	return display, display >= VerifiedThreshold
}

// Calibrate applies the display rounding rules to a raw percentage:
// exact 100 stays 100, anything in [99.5, 100) pins to 99.9 so a near-miss
// never displays as a perfect quote, everything else rounds half-up to one
// decimal. Degenerate input calibrates to 0.
func Calibrate(pct float64) float64 {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 {
		return 0
	}
	if pct >= 100 {
		return 100
	}
	if pct >= 99.5 {
		return 99.9
	}
	return math.Floor(pct*10+0.5) / 10
}

// FormatPercent renders a similarity score for display. A nil or
// degenerate score renders as "0.0%"; an exact 100 renders without a
// decimal.
func FormatPercent(score *float64) string {
	if score == nil {
		return "0.0%"
	}
	v := Calibrate(*score)
	if v == 100 {
		return "100%"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Band returns the reporting classification for a calibrated score
func Band(score float64) string {
	if math.IsNaN(score) {
		score = 0
	}
	switch {
	case score >= 95:
		return "Excellent"
	case score >= 85:
		return "Good"
	case score >= 70:
		return "Fair"
	case score >= 50:
		return "Poor"
	default:
		return "Very Poor"
	}
}
