package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Loader resolves a source argument into document text. A source may be a
// URL, a local file path, or "-" for stdin.
type Loader struct {
	fetcher *Fetcher
	stdin   io.Reader
}

// NewLoader creates a loader that uses the given fetcher for URLs
func NewLoader(fetcher *Fetcher) *Loader {
	return &Loader{
		fetcher: fetcher,
		stdin:   os.Stdin,
	}
}

// IsURL reports whether the source looks like a remote URL
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load resolves the source into document text
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil

	case IsURL(source):
		result, err := l.fetcher.FetchWithRetry(ctx, source)
		if err != nil {
			return "", err
		}
		return result.Text, nil

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}
}
