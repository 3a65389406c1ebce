// Package extract fetches a web article and reduces it to bounded plain
// text suitable for narration.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"article-podcaster/internal/textutil"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// minContentLength is the smallest body/text size considered meaningful.
	minContentLength = 100
	// maxContentLength caps the extracted text before summarization.
	maxContentLength = 1000
	// sentenceBoundary is the earliest index a closing period may sit at
	// when trimming to a sentence.
	sentenceBoundary = 800

	// maxBodyBytes bounds how much markup we are willing to read.
	maxBodyBytes = 2 << 20

	precheckTimeout = 3 * time.Second
)

// FetchError means the page was unreachable or answered with a
// non-success status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// InsufficientContentError means the page was fetched but yielded too
// little text to narrate.
type InsufficientContentError struct {
	Length int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("page content too short: %d characters (minimum %d)", e.Length, minContentLength)
}

// Extractor retrieves article pages over HTTP.
type Extractor struct {
	client *http.Client
}

func New() *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Extract fetches url and returns cleaned plain text of at most 1000
// characters, preferring to end at a sentence boundary.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	e.precheck(ctx, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if len(body) < minContentLength {
		return "", &InsufficientContentError{Length: len(body)}
	}

	text, err := cleanHTML(string(body))
	if err != nil {
		return "", fmt.Errorf("parsing page markup: %w", err)
	}

	text = textutil.Shorten(text, maxContentLength, sentenceBoundary)
	if len(text) < minContentLength {
		return "", &InsufficientContentError{Length: len(text)}
	}
	return text, nil
}

// precheck probes the URL with a cheap bounded HEAD request. A failure
// here is ignored; the real GET decides whether the page is reachable.
func (e *Extractor) precheck(ctx context.Context, url string) {
	ctx, cancel := context.WithTimeout(ctx, precheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", userAgent)
	if resp, err := e.client.Do(req); err == nil {
		resp.Body.Close()
	}
}

// cleanHTML strips scripts, styles and markup, decodes entities and
// collapses whitespace. The html parser drops comments on its own.
func cleanHTML(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	return textutil.CollapseWhitespace(doc.Text()), nil
}
