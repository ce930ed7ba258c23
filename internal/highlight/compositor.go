package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/verbatim/internal/model"
)

// Compositor renders highlighted spans over a document. It walks the
// source once, left to right, keeping a stack of currently open ranges, so
// offsets never shift no matter how many markers get inserted. Overlapping
// and nested ranges each render with their own marker boundaries; when a
// range closes while a later-opened range is still active, the inner
// markers close and reopen so the output stays well-nested.
type Compositor struct{}

// NewCompositor creates a new compositor
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Render produces the marked-up form of source. Ranges may overlap or
// nest. Zero-length and malformed ranges are skipped; the input slice is
// never modified. With no usable ranges the source comes back unchanged.
func (c *Compositor) Render(source string, ranges []model.HighlightRange) string {
	runes := []rune(source)

	valid := make([]model.HighlightRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 || r.End > len(runes) || r.Start >= r.End {
			continue
		}
		valid = append(valid, r)
	}
	if len(valid) == 0 {
		return source
	}

	// Start ascending; on equal starts the longer range opens first so it
	// wraps the shorter one
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End > valid[j].End
	})

	opensAt := make(map[int][]model.HighlightRange)
	for _, r := range valid {
		opensAt[r.Start] = append(opensAt[r.Start], r)
	}

	var b strings.Builder
	b.Grow(len(source) + len(valid)*48)

	var open []model.HighlightRange

	for i := 0; i <= len(runes); i++ {
		open = closeEndedRanges(&b, open, i)

		for _, r := range opensAt[i] {
			writeOpen(&b, r.Category)
			open = append(open, r)
		}

		if i < len(runes) {
			b.WriteRune(runes[i])
		}
	}

	return b.String()
}

// closeEndedRanges closes every open range ending at position i. Ranges
// opened after one that ends here are temporarily closed and reopened to
// keep markers balanced.
func closeEndedRanges(b *strings.Builder, open []model.HighlightRange, i int) []model.HighlightRange {
	for {
		ended := -1
		for idx := len(open) - 1; idx >= 0; idx-- {
			if open[idx].End == i {
				ended = idx
				break
			}
		}
		if ended == -1 {
			return open
		}

		// Unwind the stack down to the ended range, then restore the rest
		reopen := make([]model.HighlightRange, 0, len(open)-ended-1)
		for idx := len(open) - 1; idx >= ended; idx-- {
			b.WriteString("</mark>")
			if idx != ended {
				reopen = append([]model.HighlightRange{open[idx]}, reopen...)
			}
		}
		open = open[:ended]
		for _, r := range reopen {
			writeOpen(b, r.Category)
			open = append(open, r)
		}
	}
}

func writeOpen(b *strings.Builder, category model.Category) {
	fmt.Fprintf(b, `<mark data-category=%q>`, category.Slug())
}
