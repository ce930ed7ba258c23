package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/verbatim/internal/model"
	"github.com/ppiankov/verbatim/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	fragmentsFile string
	verifyTimeout time.Duration
	verifyJSON    string
	verifyMD      string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <source>",
	Short: "Verify existing fragments against a document, no LLM calls",
	Long: `Verify runs only the mechanical verification stage: each fragment
from the input file is matched against the source document and scored.
No LLM provider is contacted, so no API key is needed.

The fragments file is either JSON (an array of fragment objects) or plain
text with one claimed quote per line.

Example:
  verbatim verify article.txt --fragments fragments.json
  verbatim verify article.txt --fragments quotes.txt --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&fragmentsFile, "fragments", "", "fragments file (JSON array or one quote per line)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", time.Minute, "verification timeout")
	verifyCmd.Flags().StringVar(&verifyJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&verifyMD, "md", "", "output Markdown path (optional)")
	_ = verifyCmd.MarkFlagRequired("fragments")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	fragments, err := readFragmentsFile(fragmentsFile)
	if err != nil {
		return fmt.Errorf("read fragments: %w", err)
	}
	if len(fragments) == 0 {
		return fmt.Errorf("no fragments found in %s", fragmentsFile)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying %d fragments against %s\n\n", len(fragments), args[0])
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	p := pipeline.NewPipelineWithGenerator(cfg, nil)
	report := p.Verify(ctx, string(text), fragments)

	if err := p.RenderReport(report, verifyJSON, verifyMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// readFragmentsFile loads fragments from JSON or line-oriented text. Plain
// text lines become F1 fragments in file order.
func readFragmentsFile(path string) ([]model.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var fragments []model.Fragment
		if err := json.Unmarshal(data, &fragments); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		for i := range fragments {
			if fragments[i].ID == "" {
				fresh := model.NewFragment(fragments[i].Category, fragments[i].SequenceNumber, fragments[i].ClaimedContent)
				fresh.RelatedSentence = fragments[i].RelatedSentence
				fragments[i] = fresh
			}
			if fragments[i].Category == "" {
				fragments[i].Category = model.CategoryPrimary
			}
			if fragments[i].SequenceNumber == 0 {
				fragments[i].SequenceNumber = i + 1
			}
		}
		return fragments, nil
	}

	var fragments []model.Fragment
	scanner := bufio.NewScanner(strings.NewReader(trimmed))
	seq := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seq++
		fragments = append(fragments, model.NewFragment(model.CategoryPrimary, seq, line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return fragments, nil
}
