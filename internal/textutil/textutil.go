// Package textutil holds small text shaping helpers shared by the
// pipeline steps.
package textutil

import "strings"

// Shorten caps s at max characters. When the capped text contains a
// sentence-terminating period past the boundary index, the result ends at
// that period instead of the hard cutoff, trading a little content for a
// clean sentence ending.
func Shorten(s string, max, boundary int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, "."); idx >= boundary {
		return cut[:idx+1]
	}
	return cut
}

// CollapseWhitespace folds runs of whitespace into single spaces and trims
// the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
