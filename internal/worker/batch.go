package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/verbatim/internal/model"
)

// Processor defines the interface for processing one document source
type Processor interface {
	ProcessSource(ctx context.Context, source string) (*model.Report, error)
}

// ProcessJob represents one document to run through the pipeline
type ProcessJob struct {
	Source    string
	Processor Processor
}

// Execute executes the processing job
func (j *ProcessJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.ProcessSource(ctx, j.Source)
	if err != nil {
		return &ProcessResult{
			Source: j.Source,
			Report: nil,
			Error:  err,
		}
	}
	return &ProcessResult{
		Source: j.Source,
		Report: report,
		Error:  nil,
	}
}

// ProcessResult represents the result of processing one source
type ProcessResult struct {
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the error from the processing result
func (r *ProcessResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple document sources concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessSources processes multiple sources concurrently
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*ProcessResult {
	if len(sources) == 0 {
		return []*ProcessResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, source := range sources {
		job := &ProcessJob{
			Source:    source,
			Processor: b.processor,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	processResults := make([]*ProcessResult, len(results))
	for i, result := range results {
		processResults[i] = result.(*ProcessResult)
	}

	return processResults
}

// ProcessFile reads sources from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ProcessResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads document sources from a file (one per line).
// Blank lines and #-comments are skipped, duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
