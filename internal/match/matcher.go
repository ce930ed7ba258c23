package match

import (
	"strings"

	"github.com/ppiankov/verbatim/internal/model"
	"github.com/ppiankov/verbatim/internal/textutil"
)

// Kind records which search strategy produced a match
type Kind string

const (
	KindExact           Kind = "exact"
	KindCaseInsensitive Kind = "case_insensitive"
	KindFuzzy           Kind = "fuzzy"
	KindNone            Kind = "no_match"
)

const (
	// caseInsensitiveRatio is reported when the fragment matches only
	// after normalization. Kept just below 1.0 so a byte-exact quote
	// stays distinguishable from a re-cased one.
	caseInsensitiveRatio = 0.999

	// fuzzyFloor is the minimum ratio for a fuzzy window to count as a
	// located span. Below it the fragment is treated as not found rather
	// than pinned to a misleading low-confidence position.
	fuzzyFloor = 0.60

	// windowTolerance widens/narrows the fuzzy sliding window by this
	// share of the fragment length.
	windowTolerance = 0.20
)

// Result is the outcome of locating one fragment in the source document.
// Ratio is always the best candidate found; Span is nil when no acceptable
// location exists. Offsets are code-point indices into the original source.
type Result struct {
	Ratio float64
	Span  *model.Span
	Kind  Kind
}

// Matcher locates the best-aligned span of a source document for a claimed
// fragment. It is pure and safe for concurrent use.
type Matcher struct{}

// NewMatcher creates a new matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// FindBestMatch searches source for claimed content in priority order:
// exact substring, normalized (case and whitespace insensitive) substring,
// then a fuzzy sliding window. Unmatched input is a normal Result, never an
// error.
func (m *Matcher) FindBestMatch(source, claimed string) Result {
	if strings.TrimSpace(claimed) == "" || source == "" {
		return Result{Ratio: 0, Span: nil, Kind: KindNone}
	}

	// 1. Exact match, first occurrence wins
	if idx := strings.Index(source, claimed); idx >= 0 {
		start := textutil.RuneIndex(source, idx)
		span := model.Span{Start: start, End: start + len([]rune(claimed))}
		return Result{Ratio: 1.0, Span: &span, Kind: KindExact}
	}

	normSource := textutil.Normalize(source)
	normClaimed := textutil.Normalize(claimed)

	// 2. Case-insensitive match in normalized space
	if idx := strings.Index(normSource.Text, normClaimed.Text); idx >= 0 && normClaimed.Len() > 0 {
		runeIdx := textutil.RuneIndex(normSource.Text, idx)
		start, end := normSource.OriginalSpan(runeIdx, runeIdx+normClaimed.Len())
		return Result{
			Ratio: caseInsensitiveRatio,
			Span:  &model.Span{Start: start, End: end},
			Kind:  KindCaseInsensitive,
		}
	}

	// 3. Fuzzy sliding window
	return m.fuzzyMatch(normSource, normClaimed)
}

// fuzzyMatch slides windows of the fragment length (within tolerance) over
// the normalized source and keeps the window with the highest similarity
// ratio, ties broken by earliest start.
func (m *Matcher) fuzzyMatch(source textutil.NormalizedText, claimed textutil.NormalizedText) Result {
	srcRunes := []rune(source.Text)
	fragRunes := []rune(claimed.Text)

	if len(fragRunes) == 0 || len(srcRunes) == 0 {
		return Result{Ratio: 0, Span: nil, Kind: KindNone}
	}

	widths := windowWidths(len(fragRunes), len(srcRunes))

	bestRatio := 0.0
	bestStart, bestEnd := -1, -1

	// Earliest start wins ties, so starts are the outer loop
	for start := 0; start < len(srcRunes); start++ {
		for _, w := range widths {
			if start+w > len(srcRunes) {
				continue
			}
			ratio := Ratio(srcRunes[start:start+w], fragRunes)
			if ratio > bestRatio {
				bestRatio = ratio
				bestStart, bestEnd = start, start+w
			}
		}
	}

	if bestStart < 0 || bestRatio < fuzzyFloor {
		return Result{Ratio: bestRatio, Span: nil, Kind: KindNone}
	}

	origStart, origEnd := source.OriginalSpan(bestStart, bestEnd)
	return Result{
		Ratio: bestRatio,
		Span:  &model.Span{Start: origStart, End: origEnd},
		Kind:  KindFuzzy,
	}
}

// windowWidths returns the candidate window lengths for a fragment of
// fragLen code points, clamped to the source length
func windowWidths(fragLen, srcLen int) []int {
	delta := int(float64(fragLen)*windowTolerance + 0.5)
	candidates := []int{fragLen - delta, fragLen, fragLen + delta}

	var widths []int
	seen := make(map[int]bool)
	for _, w := range candidates {
		if w < 1 {
			w = 1
		}
		if w > srcLen {
			w = srcLen
		}
		if !seen[w] {
			seen[w] = true
			widths = append(widths, w)
		}
	}
	return widths
}
