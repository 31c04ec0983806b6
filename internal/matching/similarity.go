package matching

import "github.com/pmezard/go-difflib/difflib"

// Similarity returns the longest-matching-blocks ratio of a and b in [0, 1],
// compared rune by rune. Two empty strings are identical (1.0).
//
// The ratio depends on argument order: Similarity("tide", "diet") is 0.25
// while Similarity("diet", "tide") is 0.5.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runeSeq(a), runeSeq(b)).Ratio()
}

func runeSeq(s string) []string {
	seq := make([]string, 0, len(s))
	for _, r := range s {
		seq = append(seq, string(r))
	}
	return seq
}
