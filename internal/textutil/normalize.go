package textutil

import (
	"unicode"
	"unicode/utf8"
)

// NormalizedText is the comparison form of a text: lower-cased, with every
// run of whitespace collapsed to a single space and leading/trailing
// whitespace dropped. Each normalized code point keeps a map back to its
// code-point offset in the original text, so spans found in normalized
// space translate back exactly.
type NormalizedText struct {
	Text string

	// offsets[i] is the original code-point index of normalized rune i.
	// A collapsed whitespace run maps to the offset of its first rune.
	offsets []int
}

// Normalize produces the comparison form of text. It is idempotent:
// normalizing already-normalized text is a no-op.
func Normalize(text string) NormalizedText {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	offsets := make([]int, 0, len(runes))

	inSpace := false
	spaceStart := 0

	for i, r := range runes {
		if unicode.IsSpace(r) {
			if !inSpace {
				inSpace = true
				spaceStart = i
			}
			continue
		}
		if inSpace {
			// Drop the run entirely when it leads the text
			if len(out) > 0 {
				out = append(out, ' ')
				offsets = append(offsets, spaceStart)
			}
			inSpace = false
		}
		out = append(out, unicode.ToLower(r))
		offsets = append(offsets, i)
	}

	return NormalizedText{Text: string(out), offsets: offsets}
}

// Len returns the number of code points in the normalized text
func (n NormalizedText) Len() int {
	return len(n.offsets)
}

// OriginalSpan translates a half-open [start, end) code-point span in
// normalized space back to original code-point offsets. The end offset is
// derived from the last covered rune, so a span ending inside a collapsed
// whitespace run still closes right after the covered text.
func (n NormalizedText) OriginalSpan(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(n.offsets) {
		end = len(n.offsets)
	}
	if start >= end {
		if start < len(n.offsets) {
			return n.offsets[start], n.offsets[start]
		}
		return 0, 0
	}
	return n.offsets[start], n.offsets[end-1] + 1
}

// RuneIndex converts a byte offset into s to a code-point offset
func RuneIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	return utf8.RuneCountInString(s[:byteOffset])
}
