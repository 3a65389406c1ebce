// Package summarize turns extracted article text into a short narration
// script using a hosted text-generation capability behind an
// OpenAI-compatible chat completions endpoint.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"article-podcaster/internal/textutil"
)

const (
	defaultAPIURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel  = "llama-3.1-8b-instant"

	minInputLength  = 100
	maxInputLength  = 1000
	inputBoundary   = 800
	minOutputLength = 50

	// Generation is bounded and sampled loosely: the product favors fast
	// turnaround over deterministic wording.
	maxTokens   = 200
	temperature = 0.7
	topP        = 0.9
)

const systemPrompt = "You write short podcast narrations. Given article text, produce a " +
	"conversational script of roughly 100 to 150 words. Open with a hook, close with a " +
	"single takeaway. Speak directly to the listener. Do not include meta-commentary, " +
	"headings, or stage directions."

// InvalidInputError means the summarizer was handed text it cannot work
// with: too short, or an upstream response in an unrecognized shape.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return "summarize: " + e.Reason }

// InsufficientOutputError means the model produced too little usable text.
type InsufficientOutputError struct {
	Length int
}

func (e *InsufficientOutputError) Error() string {
	return fmt.Sprintf("summarize: model output too short: %d characters (minimum %d)", e.Length, minOutputLength)
}

// Summarizer calls the hosted text-generation capability.
type Summarizer struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// New builds a Summarizer. Empty apiURL and model fall back to the
// defaults; the key is required by the upstream, not validated here.
func New(apiURL, apiKey, model string) *Summarizer {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Summarizer{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

// Summarize produces a narration script for text. Input under 100
// characters is rejected; input over 1000 characters is truncated at a
// sentence boundary before submission.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < minInputLength {
		return "", &InvalidInputError{Reason: fmt.Sprintf("input too short: %d characters (minimum %d)", len(text), minInputLength)}
	}
	text = textutil.Shorten(text, maxInputLength, inputBoundary)

	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	script, err := normalizeCompletion(body)
	if err != nil {
		return "", err
	}

	script = stripPreamble(script)
	if len(script) < minOutputLength {
		return "", &InsufficientOutputError{Length: len(script)}
	}
	return script, nil
}

// completionResponse is the union of envelopes the capability is known to
// answer with: chat choices, legacy text choices, content blocks, or a
// flat output_text field.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	OutputText string `json:"output_text"`
}

// normalizeCompletion maps any known response envelope to plain generated
// text. An unrecognized shape fails loudly rather than returning empty.
func normalizeCompletion(body []byte) (string, error) {
	var r completionResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", &InvalidInputError{Reason: fmt.Sprintf("undecodable completion response: %v", err)}
	}

	switch {
	case len(r.Choices) > 0 && r.Choices[0].Message.Content != "":
		return strings.TrimSpace(r.Choices[0].Message.Content), nil
	case len(r.Choices) > 0 && r.Choices[0].Text != "":
		return strings.TrimSpace(r.Choices[0].Text), nil
	case len(r.Content) > 0 && r.Content[0].Text != "":
		return strings.TrimSpace(r.Content[0].Text), nil
	case r.OutputText != "":
		return strings.TrimSpace(r.OutputText), nil
	}
	return "", &InvalidInputError{Reason: "unrecognized completion response shape"}
}

// preambleRe matches lead-ins the model tends to emit despite the prompt,
// like "Sure, ..." or "Here's a script for you:".
var preambleRe = regexp.MustCompile(`(?i)^(?:(?:sure|certainly|of course|okay)[,!.]?\s+|here(?:'|’)?s?\b[^:\n]{0,80}:\s*)+`)

func stripPreamble(script string) string {
	return strings.TrimSpace(preambleRe.ReplaceAllString(script, ""))
}
