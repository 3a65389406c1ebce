package extract

import (
	"net/url"
	"strings"

	"article-podcaster/internal/textutil"
)

const (
	fallbackTitle = "Article"
	maxTitleLen   = 100
	minTitleLen   = 3
)

// DeriveTitle produces a human-readable title purely from the URL shape,
// without looking at page content. It never fails: anything unusable
// degrades to the "Article" fallback.
func DeriveTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return fallbackTitle
	}

	base := lastPathSegment(u.Path)
	if base == "" {
		base = strings.TrimPrefix(u.Hostname(), "www.")
	} else {
		// Drop a trailing file extension like .html, but only on path
		// segments; a bare hostname keeps its dots.
		if idx := strings.LastIndex(base, "."); idx > 0 {
			base = base[:idx]
		}
	}

	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	title := textutil.CollapseWhitespace(titleCase(base))
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	if len(title) < minTitleLen {
		return fallbackTitle
	}
	return title
}

func lastPathSegment(path string) string {
	for _, seg := range splitReverse(path) {
		if seg != "" {
			return seg
		}
	}
	return ""
}

func splitReverse(path string) []string {
	parts := strings.Split(path, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
