package model

import "time"

// SummaryType distinguishes the two generated summaries
type SummaryType string

const (
	SummaryPrimary   SummaryType = "S1" // generated from the original text
	SummarySecondary SummaryType = "S2" // generated from the F1 fragments
)

// Summary is a generated summary attached to a submission
type Summary struct {
	Type      SummaryType `json:"summary_type"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// Report is the complete result of processing one submission: both
// summaries, both fragment lists with verification state populated, and the
// aggregated verification summary.
type Report struct {
	Submission *Submission `json:"submission"`

	PrimarySummary   *Summary `json:"primary_summary,omitempty"`
	SecondarySummary *Summary `json:"secondary_summary,omitempty"`

	Primary       []Fragment `json:"fragments_f1"`
	Justification []Fragment `json:"fragments_f2"`

	Verification VerificationSummary `json:"verification_summary"`

	AverageSimilarity float64 `json:"average_similarity"`

	LLM *LLMMeta `json:"llm,omitempty"`
}

// LLMMeta records which provider generated the summaries and fragments.
// It is informational only and never affects verification.
type LLMMeta struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
}

// Fragments returns both fragment lists as a single slice, F1 first
func (r *Report) Fragments() []Fragment {
	out := make([]Fragment, 0, len(r.Primary)+len(r.Justification))
	out = append(out, r.Primary...)
	out = append(out, r.Justification...)
	return out
}
