package verify

import (
	"context"
	"math"
	"sync"

	"github.com/ppiankov/verbatim/internal/match"
	"github.com/ppiankov/verbatim/internal/model"
	"github.com/ppiankov/verbatim/internal/score"
)

// Verifier mechanically re-checks claimed fragments against the original
// document. Each fragment is matched and scored independently; one
// unverifiable fragment never blocks the rest of the batch.
type Verifier struct {
	matcher    *match.Matcher
	scorer     *score.Scorer
	maxWorkers int
}

// NewVerifier creates a verifier with the given concurrency bound
func NewVerifier(maxWorkers int) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &Verifier{
		matcher:    match.NewMatcher(),
		scorer:     score.NewScorer(),
		maxWorkers: maxWorkers,
	}
}

// VerifyFragments matches and scores every fragment against source,
// returning a new slice with Match, SimilarityScore and Verified
// populated. The input slice is not modified. Fragment order is preserved.
func (v *Verifier) VerifyFragments(ctx context.Context, source string, fragments []model.Fragment) []model.Fragment {
	if len(fragments) == 0 {
		return []model.Fragment{}
	}

	out := make([]model.Fragment, len(fragments))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, frag := range fragments {
		wg.Add(1)
		go func(idx int, f model.Fragment) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				// Leave the fragment unverified rather than failing the batch
				out[idx] = unverified(f)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			out[idx] = v.VerifyOne(source, f)
		}(i, frag)
	}

	wg.Wait()

	return out
}

// VerifyOne matches and scores a single fragment against source
func (v *Verifier) VerifyOne(source string, f model.Fragment) model.Fragment {
	result := v.matcher.FindBestMatch(source, f.ClaimedContent)

	if result.Span == nil || !result.Span.Valid(len([]rune(source))) {
		return unverified(f)
	}

	display, verified := v.scorer.Score(result.Ratio)
	if math.IsNaN(display) {
		return unverified(f)
	}

	span := *result.Span
	f.Match = &span
	f.SimilarityScore = &display
	f.Verified = verified
	return f
}

// unverified clears the derived fields so the invariant holds: no match
// means no score and not verified
func unverified(f model.Fragment) model.Fragment {
	f.Match = nil
	f.SimilarityScore = nil
	f.Verified = false
	return f
}

// BuildSummary computes the per-category and overall verification rates
// over a fully scored fragment set. Call it once, after every fragment in
// both categories has been through VerifyFragments.
func BuildSummary(fragments []model.Fragment) model.VerificationSummary {
	var summary model.VerificationSummary

	for _, f := range fragments {
		switch f.Category {
		case model.CategoryPrimary:
			summary.Primary.Total++
			if f.Verified {
				summary.Primary.VerifiedCount++
			}
		case model.CategoryJustification:
			summary.Justification.Total++
			if f.Verified {
				summary.Justification.VerifiedCount++
			}
		}
	}

	summary.Primary.VerificationRate = rate(summary.Primary.VerifiedCount, summary.Primary.Total)
	summary.Justification.VerificationRate = rate(summary.Justification.VerifiedCount, summary.Justification.Total)
	summary.OverallRate = rate(
		summary.Primary.VerifiedCount+summary.Justification.VerifiedCount,
		summary.Primary.Total+summary.Justification.Total,
	)

	return summary
}

func rate(verified, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(verified) / float64(total)
}

// HighlightRanges derives display ranges from the current fragment set.
// Only verified fragments with a located span contribute.
func HighlightRanges(fragments []model.Fragment) []model.HighlightRange {
	var ranges []model.HighlightRange
	for _, f := range fragments {
		if !f.Verified || f.Match == nil {
			continue
		}
		ranges = append(ranges, model.HighlightRange{
			Start:    f.Match.Start,
			End:      f.Match.End,
			Category: f.Category,
		})
	}
	return ranges
}
