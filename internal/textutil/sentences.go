package textutil

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// SplitSentences splits text into sentences using a simple terminator
// heuristic. Sentences missing terminal punctuation get a period appended,
// matching what the justification prompts expect.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parts := sentenceBoundary.Split(text, -1)

	var sentences []string
	for _, part := range parts {
		s := strings.TrimSpace(part)
		if s == "" {
			continue
		}
		if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
			s += "."
		}
		sentences = append(sentences, s)
	}

	return sentences
}
