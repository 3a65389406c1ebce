package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"slug with hyphens", "https://news.example/my-great-story", "My Great Story"},
		{"slug with extension", "https://news.example/posts/deep_dive.html", "Deep Dive"},
		{"trailing slash", "https://news.example/story-1/", "Story 1"},
		{"host only", "https://x.com/", "X.com"},
		{"host with www", "https://www.example.org", "Example.org"},
		{"not a url", "not a url", "Article"},
		{"empty", "", "Article"},
		{"too short segment", "https://example.com/a", "Article"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveTitle(tc.url))
		})
	}
}

func TestDeriveTitleClampsLength(t *testing.T) {
	url := "https://example.com/"
	for i := 0; i < 30; i++ {
		url += "word-"
	}
	got := DeriveTitle(url)
	assert.LessOrEqual(t, len(got), 100)
	assert.NotEqual(t, "Article", got)
}
