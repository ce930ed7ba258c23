package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/verbatim/internal/model"
	"github.com/ppiankov/verbatim/internal/score"
)

// Renderer writes reports as JSON, Markdown and terminal summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON. Path "-" writes to stdout.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// RenderMarkdown writes the report as a Markdown document, including the
// highlighted source text. Path "-" writes to stdout.
func (r *Renderer) RenderMarkdown(report *model.Report, highlighted string, path string) error {
	var b strings.Builder

	b.WriteString("# Verification Report\n\n")

	if report.Submission != nil {
		fmt.Fprintf(&b, "- **Submission:** %s\n", report.Submission.ID)
		fmt.Fprintf(&b, "- **Status:** %s\n", report.Submission.Status)
		if report.Submission.ErrorMessage != "" {
			fmt.Fprintf(&b, "- **Error:** %s\n", report.Submission.ErrorMessage)
		}
	}
	if report.LLM != nil {
		fmt.Fprintf(&b, "- **Provider:** %s (%s)\n", report.LLM.Provider, report.LLM.Model)
	}
	b.WriteString("\n")

	if report.PrimarySummary != nil {
		b.WriteString("## Primary Summary\n\n")
		b.WriteString(report.PrimarySummary.Content)
		b.WriteString("\n\n")
	}

	if report.SecondarySummary != nil {
		b.WriteString("## Fragment-Based Summary\n\n")
		b.WriteString(report.SecondarySummary.Content)
		b.WriteString("\n\n")
	}

	writeFragmentTable(&b, "Verbatim Fragments", report.Primary)
	writeFragmentTable(&b, "Justification Fragments", report.Justification)

	b.WriteString("## Verification Summary\n\n")
	fmt.Fprintf(&b, "| Category | Verified | Total | Rate |\n")
	fmt.Fprintf(&b, "|----------|----------|-------|------|\n")
	fmt.Fprintf(&b, "| Verbatim | %d | %d | %.1f%% |\n",
		report.Verification.Primary.VerifiedCount,
		report.Verification.Primary.Total,
		report.Verification.Primary.VerificationRate*100)
	fmt.Fprintf(&b, "| Justification | %d | %d | %.1f%% |\n",
		report.Verification.Justification.VerifiedCount,
		report.Verification.Justification.Total,
		report.Verification.Justification.VerificationRate*100)
	fmt.Fprintf(&b, "| **Overall** | %d | %d | %.1f%% |\n\n",
		report.Verification.Primary.VerifiedCount+report.Verification.Justification.VerifiedCount,
		report.Verification.Primary.Total+report.Verification.Justification.Total,
		report.Verification.OverallRate*100)

	fmt.Fprintf(&b, "Average similarity: %.1f%% (%s)\n\n",
		report.AverageSimilarity, score.Band(report.AverageSimilarity))

	if highlighted != "" {
		b.WriteString("## Highlighted Source\n\n")
		b.WriteString(highlighted)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nGenerated by verbatim on %s\n", time.Now().UTC().Format(time.RFC3339))
	}

	if path == "-" {
		_, err := fmt.Print(b.String())
		return err
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeFragmentTable(b *strings.Builder, title string, fragments []model.Fragment) {
	if len(fragments) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| # | Fragment | Score | Verified |\n")
	fmt.Fprintf(b, "|---|----------|-------|----------|\n")

	for _, f := range fragments {
		status := "✗"
		if f.Verified {
			status = "✓"
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s |\n",
			f.SequenceNumber,
			truncate(f.ClaimedContent, 80),
			score.FormatPercent(f.SimilarityScore),
			status)
	}
	b.WriteString("\n")
}

// RenderSummary prints a short verification summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("Verification Summary")
	fmt.Println("====================")

	if report.Submission != nil {
		fmt.Printf("Submission: %s (%s)\n", report.Submission.ID, report.Submission.Status)
	}

	fmt.Printf("Verbatim fragments:      %d/%d verified (%.1f%%)\n",
		report.Verification.Primary.VerifiedCount,
		report.Verification.Primary.Total,
		report.Verification.Primary.VerificationRate*100)
	fmt.Printf("Justification fragments: %d/%d verified (%.1f%%)\n",
		report.Verification.Justification.VerifiedCount,
		report.Verification.Justification.Total,
		report.Verification.Justification.VerificationRate*100)
	fmt.Printf("Overall:                 %.1f%%\n", report.Verification.OverallRate*100)
	fmt.Printf("Average similarity:      %.1f%% (%s)\n",
		report.AverageSimilarity, score.Band(report.AverageSimilarity))
}

// truncate shortens s for table display
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
