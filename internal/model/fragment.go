package model

import "github.com/google/uuid"

// Category classifies a fragment by its role in the pipeline
type Category string

const (
	// CategoryPrimary marks F1 fragments: verbatim excerpts extracted
	// directly from the source document
	CategoryPrimary Category = "F1"

	// CategoryJustification marks F2 fragments: verbatim excerpts that
	// justify a specific sentence of the primary summary
	CategoryJustification Category = "F2"
)

// Slug returns the lowercase styling hook for the category
func (c Category) Slug() string {
	switch c {
	case CategoryPrimary:
		return "primary"
	case CategoryJustification:
		return "justification"
	default:
		return "unknown"
	}
}

// Span is a half-open [Start, End) range of code-point indices into the
// source document
type Span struct {
	Start int `json:"start_position"`
	End   int `json:"end_position"`
}

// Len returns the number of code points covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Valid reports whether the span is well-formed against a document of
// docLen code points
func (s Span) Valid(docLen int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= docLen
}

// Fragment is a candidate excerpt claimed by the upstream model to be a
// verbatim quote from the source document. Match, SimilarityScore and
// Verified stay unset until the verifier runs; a nil Match always implies
// a nil SimilarityScore and Verified == false.
type Fragment struct {
	ID              string   `json:"id"`
	Category        Category `json:"category"`
	SequenceNumber  int      `json:"sequence_number"`
	ClaimedContent  string   `json:"claimed_content"`
	RelatedSentence string   `json:"related_sentence,omitempty"` // F2 only: the S1 sentence being justified
	Match           *Span    `json:"match,omitempty"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	Verified        bool     `json:"verified"`
}

// NewFragment creates an unverified fragment with a fresh ID
func NewFragment(category Category, seq int, claimed string) Fragment {
	return Fragment{
		ID:             uuid.NewString(),
		Category:       category,
		SequenceNumber: seq,
		ClaimedContent: claimed,
	}
}

// HighlightRange is a category-tagged span selected for visual emphasis.
// Ranges are derived from verified fragments only and recomputed on demand,
// never persisted.
type HighlightRange struct {
	Start    int      `json:"start_position"`
	End      int      `json:"end_position"`
	Category Category `json:"category"`
}

// CategoryStats holds verification totals for a single fragment category
type CategoryStats struct {
	Total            int     `json:"total"`
	VerifiedCount    int     `json:"verified"`
	VerificationRate float64 `json:"verification_rate"`
}

// VerificationSummary aggregates verification results across both
// categories. It is recomputed once, after every fragment has been scored.
type VerificationSummary struct {
	Primary       CategoryStats `json:"F1"`
	Justification CategoryStats `json:"F2"`
	OverallRate   float64       `json:"overall_verification_rate"`
}
