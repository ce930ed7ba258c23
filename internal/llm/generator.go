package llm

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/verbatim/internal/cache"
)

// fragmentCount is the number of verbatim fragments requested per document.
const fragmentCount = 10

// completionTTL bounds how long a cached completion stays valid.
const completionTTL = 24 * time.Hour

var numberedItemRe = regexp.MustCompile(`^\d+[\.\)\:]\s*(.+)`)
var bareNumberRe = regexp.MustCompile(`^\d+[\.\)\:]?\s*$`)

// JustificationPair couples a summary sentence with the verbatim quote the
// model claims supports it.
type JustificationPair struct {
	Sentence string
	Quote    string
}

// Generator produces summaries and verbatim fragments through an LLM provider.
// Completions are cached by prompt so repeated runs over the same document do
// not repeat API calls.
type Generator struct {
	provider Provider
	cache    cache.Cache
	limiter  *rate.Limiter
	verbose  bool
}

// NewGenerator creates a generator backed by the given provider. A nil cache
// disables completion caching.
func NewGenerator(provider Provider, c cache.Cache, requestsPerSecond float64, verbose bool) *Generator {
	if c == nil {
		c = cache.NewNoop()
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}

	return &Generator{
		provider: provider,
		cache:    c,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		verbose:  verbose,
	}
}

// PrimarySummary generates a summary of the original text.
func (g *Generator) PrimarySummary(ctx context.Context, text string) (string, error) {
	content, err := g.complete(ctx, primarySummarySystem, primarySummaryPrompt(text), 500)
	if err != nil {
		return "", fmt.Errorf("primary summary: %w", err)
	}
	return content, nil
}

// ExtractFragments asks the model for verbatim quotes from the text and
// normalizes the result to exactly fragmentCount entries.
func (g *Generator) ExtractFragments(ctx context.Context, text string) ([]string, error) {
	content, err := g.complete(ctx, extractFragmentsSystem, extractFragmentsPrompt(text), 800)
	if err != nil {
		return nil, fmt.Errorf("extract fragments: %w", err)
	}

	fragments := parseNumberedList(content)

	if len(fragments) != fragmentCount {
		if g.verbose {
			fmt.Fprintf(os.Stderr, "Expected %d fragments, got %d. Adjusting...\n", fragmentCount, len(fragments))
		}
		for i := len(fragments); i < fragmentCount; i++ {
			fragments = append(fragments, fmt.Sprintf("Fragment %d not extracted", i+1))
		}
		fragments = fragments[:fragmentCount]
	}

	return fragments, nil
}

// SecondarySummary generates a summary built solely from the given fragments.
func (g *Generator) SecondarySummary(ctx context.Context, fragments []string) (string, error) {
	var b strings.Builder
	for _, fragment := range fragments {
		fmt.Fprintf(&b, "- %s\n", fragment)
	}

	content, err := g.complete(ctx, secondarySummarySystem, secondarySummaryPrompt(strings.TrimSuffix(b.String(), "\n")), 500)
	if err != nil {
		return "", fmt.Errorf("secondary summary: %w", err)
	}
	return content, nil
}

// JustificationFragments finds a supporting verbatim quote for each summary
// sentence. A failed lookup records an error placeholder instead of aborting
// the whole batch.
func (g *Generator) JustificationFragments(ctx context.Context, originalText string, sentences []string) ([]JustificationPair, error) {
	pairs := make([]JustificationPair, 0, len(sentences))

	for _, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			return pairs, err
		}

		quote, err := g.complete(ctx, justificationSystem, justificationPrompt(sentence, originalText), 300)
		if err != nil {
			if g.verbose {
				fmt.Fprintf(os.Stderr, "Failed to extract justification for sentence: %s. Error: %v\n", sentence, err)
			}
			pairs = append(pairs, JustificationPair{
				Sentence: sentence,
				Quote:    fmt.Sprintf("[Error extracting justification: %v]", err),
			})
			continue
		}

		quote = strings.Trim(strings.TrimSpace(quote), `"'`)
		pairs = append(pairs, JustificationPair{Sentence: sentence, Quote: quote})
	}

	return pairs, nil
}

// complete runs one completion through the cache and rate limiter.
func (g *Generator) complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	key := cache.Key(g.provider.Name(), system, prompt)
	if cached, found := g.cache.Get(key); found {
		if g.verbose {
			fmt.Fprintf(os.Stderr, "Cache hit for %s completion\n", g.provider.Name())
		}
		return string(cached), nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := g.provider.Complete(ctx, CompletionRequest{
		System:    system,
		Prompt:    prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	if g.verbose {
		fmt.Fprintf(os.Stderr, "%s completion ok (model=%s tokens=%d)\n", g.provider.Name(), resp.Model, resp.TokensUsed)
	}

	content := strings.TrimSpace(resp.Content)
	if err := g.cache.Set(key, []byte(content), completionTTL); err != nil && g.verbose {
		fmt.Fprintf(os.Stderr, "Cache write failed: %v\n", err)
	}
	return content, nil
}

// parseNumberedList extracts items from a numbered list response. Lines that
// carry no leading number are kept as-is so loosely formatted responses still
// parse.
func parseNumberedList(text string) []string {
	var items []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := numberedItemRe.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
		} else if !bareNumberRe.MatchString(line) {
			items = append(items, line)
		}
	}

	return items
}
