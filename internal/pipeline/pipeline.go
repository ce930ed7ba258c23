package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/verbatim/internal/cache"
	"github.com/ppiankov/verbatim/internal/highlight"
	"github.com/ppiankov/verbatim/internal/ingest"
	"github.com/ppiankov/verbatim/internal/llm"
	"github.com/ppiankov/verbatim/internal/model"
	"github.com/ppiankov/verbatim/internal/score"
	"github.com/ppiankov/verbatim/internal/textutil"
	"github.com/ppiankov/verbatim/internal/verify"
)

// Generator abstracts the LLM stages so the pipeline can run against a
// test double
type Generator interface {
	PrimarySummary(ctx context.Context, text string) (string, error)
	ExtractFragments(ctx context.Context, text string) ([]string, error)
	SecondarySummary(ctx context.Context, fragments []string) (string, error)
	JustificationFragments(ctx context.Context, originalText string, sentences []string) ([]llm.JustificationPair, error)
}

// Pipeline orchestrates the complete processing run: generation,
// verification, aggregation and rendering
type Pipeline struct {
	generator  Generator
	verifier   *verify.Verifier
	compositor *highlight.Compositor
	renderer   *Renderer
	loader     *ingest.Loader
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. The LLM provider is
// required; document fetching and caching are wired from the same config.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var completionCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(home, ".verbatim", "cache")
		}
		completionCache = cache.NewLayered(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	generator := llm.NewGenerator(provider, completionCache, cfg.LLM.RequestsPerSecond, cfg.Output.Verbose)

	robots := ingest.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	fetcher := ingest.NewFetcher(cfg.HTTP, robots)

	return &Pipeline{
		generator:  generator,
		verifier:   verify.NewVerifier(cfg.Concurrency.VerifyWorkers),
		compositor: highlight.NewCompositor(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		loader:     ingest.NewLoader(fetcher),
		config:     cfg,
	}, nil
}

// NewPipelineWithGenerator creates a pipeline around an existing generator.
// Used by tests and by callers that manage the provider themselves.
func NewPipelineWithGenerator(cfg *model.Config, generator Generator) *Pipeline {
	return &Pipeline{
		generator:  generator,
		verifier:   verify.NewVerifier(cfg.Concurrency.VerifyWorkers),
		compositor: highlight.NewCompositor(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}
}

// ProcessSource loads the source (URL, file path or "-") and processes it
func (p *Pipeline) ProcessSource(ctx context.Context, source string) (*model.Report, error) {
	if p.loader == nil {
		return nil, fmt.Errorf("pipeline has no document loader")
	}

	text, err := p.loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}

	return p.Process(ctx, text)
}

// Process runs the full pipeline over the given document text: primary
// summary, verbatim fragment extraction, fragment-based summary, per-sentence
// justifications, then mechanical verification of both fragment sets.
// On a generation failure the returned report still carries the failed
// submission with its error message.
func (p *Pipeline) Process(ctx context.Context, text string) (*model.Report, error) {
	sub := model.NewSubmission(text)
	sub.StartProcessing()

	report := &model.Report{Submission: sub}

	fail := func(stage string, err error) (*model.Report, error) {
		wrapped := fmt.Errorf("%s: %w", stage, err)
		sub.MarkFailed(wrapped.Error())
		return report, wrapped
	}

	// 1. Primary summary (S1)
	s1, err := p.generator.PrimarySummary(ctx, text)
	if err != nil {
		return fail("primary summary", err)
	}
	report.PrimarySummary = &model.Summary{
		Type:      model.SummaryPrimary,
		Content:   s1,
		CreatedAt: time.Now().UTC(),
	}

	// 2. Verbatim fragments (F1)
	contents, err := p.generator.ExtractFragments(ctx, text)
	if err != nil {
		return fail("extract fragments", err)
	}

	primary := make([]model.Fragment, 0, len(contents))
	for i, content := range contents {
		primary = append(primary, model.NewFragment(model.CategoryPrimary, i+1, content))
	}
	report.Primary = p.verifier.VerifyFragments(ctx, text, primary)

	// 3. Fragment-based summary (S2)
	s2, err := p.generator.SecondarySummary(ctx, contents)
	if err != nil {
		return fail("secondary summary", err)
	}
	report.SecondarySummary = &model.Summary{
		Type:      model.SummarySecondary,
		Content:   s2,
		CreatedAt: time.Now().UTC(),
	}

	// 4. Per-sentence justifications (F2)
	sentences := textutil.SplitSentences(s1)
	pairs, err := p.generator.JustificationFragments(ctx, text, sentences)
	if err != nil {
		return fail("justification fragments", err)
	}

	justification := make([]model.Fragment, 0, len(pairs))
	for i, pair := range pairs {
		f := model.NewFragment(model.CategoryJustification, i+1, pair.Quote)
		f.RelatedSentence = pair.Sentence
		justification = append(justification, f)
	}
	report.Justification = p.verifier.VerifyFragments(ctx, text, justification)

	// 5. Aggregate
	all := report.Fragments()
	report.Verification = verify.BuildSummary(all)
	report.AverageSimilarity = score.Average(all)
	report.LLM = &model.LLMMeta{
		Provider: p.config.LLM.Provider,
		Model:    p.config.LLM.Model,
	}

	sub.MarkCompleted()
	return report, nil
}

// Verify runs only the mechanical verification stage over fragments that
// were generated elsewhere. No LLM calls are made.
func (p *Pipeline) Verify(ctx context.Context, text string, fragments []model.Fragment) *model.Report {
	sub := model.NewSubmission(text)
	sub.StartProcessing()

	report := &model.Report{Submission: sub}

	var primary, justification []model.Fragment
	for _, f := range fragments {
		if f.Category == model.CategoryJustification {
			justification = append(justification, f)
		} else {
			primary = append(primary, f)
		}
	}

	report.Primary = p.verifier.VerifyFragments(ctx, text, primary)
	report.Justification = p.verifier.VerifyFragments(ctx, text, justification)

	all := report.Fragments()
	report.Verification = verify.BuildSummary(all)
	report.AverageSimilarity = score.Average(all)

	sub.MarkCompleted()
	return report
}

// Highlighted renders the submission text with verified fragments wrapped
// in category-tagged markers
func (p *Pipeline) Highlighted(report *model.Report) string {
	if report == nil || report.Submission == nil {
		return ""
	}
	ranges := verify.HighlightRanges(report.Fragments())
	return p.compositor.Render(report.Submission.OriginalText, ranges)
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, p.Highlighted(report), mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
