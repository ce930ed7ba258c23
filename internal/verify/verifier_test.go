package verify

import (
	"context"
	"testing"

	"github.com/ppiankov/verbatim/internal/model"
)

const testSource = "The quick brown fox jumps over the lazy dog. It was a bright day in the meadow."

func TestVerifyFragments_MixedBatch(t *testing.T) {
	v := NewVerifier(4)

	fragments := []model.Fragment{
		{ID: "1", Category: model.CategoryPrimary, SequenceNumber: 1, ClaimedContent: "quick brown fox"},
		{ID: "2", Category: model.CategoryPrimary, SequenceNumber: 2, ClaimedContent: "BRIGHT DAY IN THE MEADOW"},
		{ID: "3", Category: model.CategoryPrimary, SequenceNumber: 3, ClaimedContent: "quikc brown fox"},
		{ID: "4", Category: model.CategoryPrimary, SequenceNumber: 4, ClaimedContent: "completely unrelated nonsense xyzzy"},
		{ID: "5", Category: model.CategoryPrimary, SequenceNumber: 5, ClaimedContent: ""},
	}

	out := v.VerifyFragments(context.Background(), testSource, fragments)

	if len(out) != len(fragments) {
		t.Fatalf("expected %d results, got %d", len(fragments), len(out))
	}

	// Order preserved
	for i := range out {
		if out[i].ID != fragments[i].ID {
			t.Fatalf("order changed: index %d has ID %s", i, out[i].ID)
		}
	}

	// Exact match
	exact := out[0]
	if exact.SimilarityScore == nil || *exact.SimilarityScore != 100 {
		t.Errorf("exact fragment score = %v, want 100", exact.SimilarityScore)
	}
	if !exact.Verified {
		t.Error("exact fragment must verify")
	}
	if exact.Match == nil || exact.Match.Start != 4 || exact.Match.End != 19 {
		t.Errorf("exact fragment span = %+v, want (4, 19)", exact.Match)
	}

	// Case-insensitive match
	ci := out[1]
	if !ci.Verified {
		t.Error("case-insensitive fragment must verify")
	}
	if ci.SimilarityScore == nil || *ci.SimilarityScore < 99.5 || *ci.SimilarityScore >= 100 {
		t.Errorf("case-insensitive score = %v, want [99.5, 100)", ci.SimilarityScore)
	}

	// Fuzzy match
	fuzzy := out[2]
	if !fuzzy.Verified {
		t.Error("near-verbatim fragment should verify")
	}
	if fuzzy.SimilarityScore == nil || *fuzzy.SimilarityScore >= 100 {
		t.Errorf("fuzzy score = %v, want below 100", fuzzy.SimilarityScore)
	}

	// Unmatched fragments hold the no-match invariant
	for _, f := range []model.Fragment{out[3], out[4]} {
		if f.Match != nil {
			t.Errorf("fragment %s: expected nil match, got %+v", f.ID, f.Match)
		}
		if f.SimilarityScore != nil {
			t.Errorf("fragment %s: nil match must mean nil score, got %v", f.ID, *f.SimilarityScore)
		}
		if f.Verified {
			t.Errorf("fragment %s: must not verify without a match", f.ID)
		}
	}

	// Scores stay in range wherever present
	for _, f := range out {
		if f.SimilarityScore != nil && (*f.SimilarityScore < 0 || *f.SimilarityScore > 100) {
			t.Errorf("fragment %s: score %f outside [0, 100]", f.ID, *f.SimilarityScore)
		}
	}
}

func TestVerifyFragments_InputNotMutated(t *testing.T) {
	v := NewVerifier(2)

	fragments := []model.Fragment{
		{ID: "1", Category: model.CategoryPrimary, ClaimedContent: "quick brown fox"},
	}

	_ = v.VerifyFragments(context.Background(), testSource, fragments)

	if fragments[0].Match != nil || fragments[0].SimilarityScore != nil || fragments[0].Verified {
		t.Error("input slice was mutated by VerifyFragments")
	}
}

func TestVerifyFragments_Empty(t *testing.T) {
	v := NewVerifier(2)

	out := v.VerifyFragments(context.Background(), testSource, nil)
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d", len(out))
	}
}

func TestVerifyFragments_CancelledContext(t *testing.T) {
	v := NewVerifier(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fragments := make([]model.Fragment, 20)
	for i := range fragments {
		fragments[i] = model.Fragment{ID: "f", Category: model.CategoryPrimary, ClaimedContent: "quick brown fox"}
	}

	out := v.VerifyFragments(ctx, testSource, fragments)

	// Every fragment still gets a populated result; cancelled work is
	// simply unverified
	if len(out) != len(fragments) {
		t.Fatalf("expected %d results, got %d", len(fragments), len(out))
	}
	for _, f := range out {
		if f.SimilarityScore == nil && (f.Match != nil || f.Verified) {
			t.Error("invariant broken on cancelled fragment")
		}
	}
}

func TestBuildSummary(t *testing.T) {
	s := func(v float64) *float64 { return &v }

	fragments := []model.Fragment{
		{Category: model.CategoryPrimary, SimilarityScore: s(100), Verified: true},
		{Category: model.CategoryPrimary, SimilarityScore: s(80), Verified: true},
		{Category: model.CategoryPrimary, Verified: false},
		{Category: model.CategoryPrimary, Verified: false},
		{Category: model.CategoryJustification, SimilarityScore: s(95), Verified: true},
		{Category: model.CategoryJustification, Verified: false},
	}

	summary := BuildSummary(fragments)

	if summary.Primary.Total != 4 || summary.Primary.VerifiedCount != 2 {
		t.Errorf("primary stats = %+v, want 2/4", summary.Primary)
	}
	if summary.Primary.VerificationRate != 0.5 {
		t.Errorf("primary rate = %f, want 0.5", summary.Primary.VerificationRate)
	}
	if summary.Justification.Total != 2 || summary.Justification.VerifiedCount != 1 {
		t.Errorf("justification stats = %+v, want 1/2", summary.Justification)
	}
	if summary.OverallRate != 0.5 {
		t.Errorf("overall rate = %f, want 0.5", summary.OverallRate)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	summary := BuildSummary(nil)

	if summary.Primary.VerificationRate != 0 || summary.Justification.VerificationRate != 0 || summary.OverallRate != 0 {
		t.Errorf("empty summary must have zero rates, got %+v", summary)
	}
}

func TestHighlightRanges(t *testing.T) {
	fragments := []model.Fragment{
		{Category: model.CategoryPrimary, Verified: true, Match: &model.Span{Start: 4, End: 19}},
		{Category: model.CategoryJustification, Verified: true, Match: &model.Span{Start: 45, End: 60}},
		{Category: model.CategoryPrimary, Verified: false, Match: &model.Span{Start: 0, End: 3}},
		{Category: model.CategoryPrimary, Verified: true, Match: nil},
	}

	ranges := HighlightRanges(fragments)

	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges from verified fragments, got %d", len(ranges))
	}
	if ranges[0].Category != model.CategoryPrimary || ranges[0].Start != 4 {
		t.Errorf("unexpected first range %+v", ranges[0])
	}
	if ranges[1].Category != model.CategoryJustification {
		t.Errorf("unexpected second range %+v", ranges[1])
	}
}
