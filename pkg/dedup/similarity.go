package dedup

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores two texts in [0, 1] using the matching-block
// sequence ratio 2*M / (len(a)+len(b)), where M is the total length of
// the blocks found by greedy longest-match. Symmetric, and 1.0 for
// identical inputs. Comparison is rune-based so multi-byte text scores
// the same as ASCII.
func Similarity(a, b string) float64 {
	return ratio(splitRunes(a), splitRunes(b))
}

func ratio(a, b []string) float64 {
	// Canonicalize argument order so the score is symmetric; the
	// matcher's tie-breaking is otherwise order-dependent.
	if slices.Compare(a, b) > 0 {
		a, b = b, a
	}
	return difflib.NewMatcher(a, b).Ratio()
}

// maxRatio is an upper bound on ratio(a, b) given only the lengths:
// at most min(la, lb) elements can match. Used to skip scoring pairs
// whose lengths already rule out the threshold.
func maxRatio(la, lb int) float64 {
	if la+lb == 0 {
		return 1.0
	}
	min := la
	if lb < la {
		min = lb
	}
	return 2.0 * float64(min) / float64(la+lb)
}

// splitRunes turns a string into one element per rune, the unit the
// sequence matcher operates on.
func splitRunes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
