// Package tts adapts narration scripts into audio bytes via the
// ElevenLabs text-to-speech API.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"article-podcaster/internal/textutil"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	modelID        = "eleven_turbo_v2_5"

	// The API is billed by input length, so scripts are capped before
	// submission, preferring a sentence boundary past 600 characters.
	maxScriptLength  = 800
	sentenceBoundary = 600
)

// ConfigurationError means a required synthesis credential is missing.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string { return "tts: missing configuration: " + e.Missing }

// EmptyInputError means synthesis was requested for blank text.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string { return "tts: empty input text" }

// EmptyOutputError means the upstream answered success with zero audio bytes.
type EmptyOutputError struct{}

func (e *EmptyOutputError) Error() string { return "tts: upstream returned no audio data" }

// SynthesisError carries the upstream status and body of a failed
// synthesis call.
type SynthesisError struct {
	Status int
	Body   string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("tts: upstream returned %d: %s", e.Status, e.Body)
}

// Synthesizer calls the hosted text-to-speech capability with a fixed
// voice identity and voice-shaping parameters.
type Synthesizer struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

// New builds a Synthesizer. Empty voiceID and baseURL fall back to the
// defaults; the API key may be empty, in which case Synthesize fails with
// a ConfigurationError.
func New(apiKey, voiceID, baseURL string) *Synthesizer {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Synthesizer{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize converts script text into mp3 bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, script string) ([]byte, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, &EmptyInputError{}
	}
	if s.apiKey == "" {
		return nil, &ConfigurationError{Missing: "ELEVENLABS_API_KEY"}
	}

	script = textutil.Shorten(script, maxScriptLength, sentenceBoundary)

	payload, err := json.Marshal(synthesisRequest{
		Text:    script,
		ModelID: modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0,
			UseSpeakerBoost: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=mp3_44100_128", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling synthesis endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading synthesis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SynthesisError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if len(body) == 0 {
		return nil, &EmptyOutputError{}
	}
	return body, nil
}
