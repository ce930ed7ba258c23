package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/verbatim/internal/llm"
	"github.com/ppiankov/verbatim/internal/model"
)

const testDocument = "The quick brown fox jumps over the lazy dog. " +
	"Rivers carve canyons over millions of years. " +
	"Honey never spoils when stored properly."

// stubGenerator returns fixed outputs without any LLM calls
type stubGenerator struct {
	summary    string
	fragments  []string
	justQuotes []string
	failStage  string
}

func (g *stubGenerator) PrimarySummary(ctx context.Context, text string) (string, error) {
	if g.failStage == "primary" {
		return "", errors.New("provider unavailable")
	}
	return g.summary, nil
}

func (g *stubGenerator) ExtractFragments(ctx context.Context, text string) ([]string, error) {
	if g.failStage == "fragments" {
		return nil, errors.New("provider unavailable")
	}
	return g.fragments, nil
}

func (g *stubGenerator) SecondarySummary(ctx context.Context, fragments []string) (string, error) {
	if g.failStage == "secondary" {
		return "", errors.New("provider unavailable")
	}
	return "A summary built from fragments.", nil
}

func (g *stubGenerator) JustificationFragments(ctx context.Context, originalText string, sentences []string) ([]llm.JustificationPair, error) {
	if g.failStage == "justification" {
		return nil, errors.New("provider unavailable")
	}
	quotes := g.justQuotes
	if quotes == nil {
		quotes = g.fragments
	}
	pairs := make([]llm.JustificationPair, 0, len(sentences))
	for i, sentence := range sentences {
		pairs = append(pairs, llm.JustificationPair{Sentence: sentence, Quote: quotes[i%len(quotes)]})
	}
	return pairs, nil
}

func testPipeline(gen Generator) *Pipeline {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "stub"
	cfg.LLM.Model = "stub-1"
	return NewPipelineWithGenerator(cfg, gen)
}

func TestProcess_FullRun(t *testing.T) {
	gen := &stubGenerator{
		summary: "Nature holds surprises. Time changes landscapes.",
		fragments: []string{
			"The quick brown fox jumps over the lazy dog",
			"Rivers carve canyons over millions of years",
			"Honey never spoils",
		},
	}

	p := testPipeline(gen)
	report, err := p.Process(context.Background(), testDocument)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if report.Submission.Status != model.StatusCompleted {
		t.Errorf("Expected completed status, got %s", report.Submission.Status)
	}
	if report.PrimarySummary == nil || report.PrimarySummary.Type != model.SummaryPrimary {
		t.Fatal("Expected primary summary")
	}
	if report.SecondarySummary == nil || report.SecondarySummary.Type != model.SummarySecondary {
		t.Fatal("Expected secondary summary")
	}

	if len(report.Primary) != 3 {
		t.Fatalf("Expected 3 verbatim fragments, got %d", len(report.Primary))
	}
	for i, f := range report.Primary {
		if f.Category != model.CategoryPrimary {
			t.Errorf("Fragment %d: expected category F1, got %s", i, f.Category)
		}
		if f.SequenceNumber != i+1 {
			t.Errorf("Fragment %d: expected sequence %d, got %d", i, i+1, f.SequenceNumber)
		}
		if !f.Verified {
			t.Errorf("Fragment %d should verify against the source: %q", i, f.ClaimedContent)
		}
		if f.Match == nil || f.SimilarityScore == nil {
			t.Errorf("Fragment %d: verified fragment missing match or score", i)
		}
	}

	// Two sentences in the stub summary, each justified
	if len(report.Justification) != 2 {
		t.Fatalf("Expected 2 justification fragments, got %d", len(report.Justification))
	}
	for i, f := range report.Justification {
		if f.Category != model.CategoryJustification {
			t.Errorf("Justification %d: expected category F2, got %s", i, f.Category)
		}
		if f.RelatedSentence == "" {
			t.Errorf("Justification %d: missing related sentence", i)
		}
	}

	if report.Verification.OverallRate != 1.0 {
		t.Errorf("Expected overall rate 1.0, got %f", report.Verification.OverallRate)
	}
	if report.AverageSimilarity < 70 {
		t.Errorf("Expected high average similarity, got %f", report.AverageSimilarity)
	}
	if report.LLM == nil || report.LLM.Provider != "stub" {
		t.Error("Expected LLM metadata on report")
	}
}

func TestProcess_GenerationFailureMarksSubmission(t *testing.T) {
	gen := &stubGenerator{failStage: "primary"}

	p := testPipeline(gen)
	report, err := p.Process(context.Background(), testDocument)
	if err == nil {
		t.Fatal("Expected error from failing generator")
	}
	if report == nil || report.Submission == nil {
		t.Fatal("Expected report with submission even on failure")
	}
	if report.Submission.Status != model.StatusFailed {
		t.Errorf("Expected failed status, got %s", report.Submission.Status)
	}
	if report.Submission.ErrorMessage == "" {
		t.Error("Expected error message on failed submission")
	}
}

func TestProcess_LateStageFailureKeepsEarlierResults(t *testing.T) {
	gen := &stubGenerator{
		summary:   "One sentence only.",
		fragments: []string{"The quick brown fox"},
		failStage: "justification",
	}

	p := testPipeline(gen)
	report, err := p.Process(context.Background(), testDocument)
	if err == nil {
		t.Fatal("Expected error from failing generator")
	}
	if report.Submission.Status != model.StatusFailed {
		t.Errorf("Expected failed status, got %s", report.Submission.Status)
	}
	if report.PrimarySummary == nil {
		t.Error("Expected primary summary retained on late failure")
	}
	if len(report.Primary) != 1 {
		t.Errorf("Expected verified fragments retained on late failure, got %d", len(report.Primary))
	}
}

func TestVerify_OfflineOnly(t *testing.T) {
	fragments := []model.Fragment{
		model.NewFragment(model.CategoryPrimary, 1, "The quick brown fox"),
		model.NewFragment(model.CategoryPrimary, 2, "completely unrelated content xyz"),
		model.NewFragment(model.CategoryJustification, 1, "Honey never spoils"),
	}

	p := testPipeline(&stubGenerator{})
	report := p.Verify(context.Background(), testDocument, fragments)

	if report.Submission.Status != model.StatusCompleted {
		t.Errorf("Expected completed status, got %s", report.Submission.Status)
	}
	if len(report.Primary) != 2 {
		t.Fatalf("Expected 2 primary fragments, got %d", len(report.Primary))
	}
	if len(report.Justification) != 1 {
		t.Fatalf("Expected 1 justification fragment, got %d", len(report.Justification))
	}

	if !report.Primary[0].Verified {
		t.Error("Expected exact quote to verify")
	}
	if report.Primary[1].Verified {
		t.Error("Expected unrelated content to stay unverified")
	}
	if !report.Justification[0].Verified {
		t.Error("Expected justification quote to verify")
	}

	if report.Verification.Primary.Total != 2 || report.Verification.Justification.Total != 1 {
		t.Errorf("Unexpected summary totals: %+v", report.Verification)
	}
}

func TestHighlighted(t *testing.T) {
	gen := &stubGenerator{
		summary:    "One sentence only.",
		fragments:  []string{"quick brown fox"},
		justQuotes: []string{"Rivers carve canyons"},
	}

	p := testPipeline(gen)
	report, err := p.Process(context.Background(), testDocument)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	highlighted := p.Highlighted(report)
	if !strings.Contains(highlighted, `<mark data-category="primary">quick brown fox</mark>`) {
		t.Errorf("Expected primary marker in highlighted output:\n%s", highlighted)
	}
	if !strings.Contains(highlighted, `<mark data-category="justification">Rivers carve canyons</mark>`) {
		t.Errorf("Expected justification marker in highlighted output:\n%s", highlighted)
	}

	// Stripping markers must recover the original text
	stripped := highlighted
	for _, marker := range []string{`<mark data-category="primary">`, `<mark data-category="justification">`, "</mark>"} {
		stripped = strings.ReplaceAll(stripped, marker, "")
	}
	if stripped != testDocument {
		t.Errorf("Stripping markers should recover the source text:\n%s", stripped)
	}
}

func TestHighlighted_NilReport(t *testing.T) {
	p := testPipeline(&stubGenerator{})
	if got := p.Highlighted(nil); got != "" {
		t.Errorf("Expected empty string for nil report, got %q", got)
	}
}
