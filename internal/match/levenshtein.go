package match

// Distance computes the Levenshtein edit distance between two rune slices
// using a single-row DP table.
func Distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Ratio converts edit distance to a normalized similarity in [0, 1]:
// 1.0 only for identical inputs, monotonically non-increasing as the
// distance grows.
func Ratio(a, b []rune) float64 {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(longer)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
