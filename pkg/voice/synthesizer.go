// Package voice wraps the external text-to-speech capability.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Synthesizer converts response text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ElevenLabsSynthesizer calls an ElevenLabs-compatible text-to-speech
// endpoint and returns the raw audio bytes (mp3).
type ElevenLabsSynthesizer struct {
	baseURL    string
	apiKey     string
	voiceID    string
	modelID    string
	httpClient *http.Client
}

// NewElevenLabsSynthesizer builds a Synthesizer.
// baseURL defaults to the public API when empty.
func NewElevenLabsSynthesizer(baseURL, apiKey, voiceID, modelID string) *ElevenLabsSynthesizer {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsSynthesizer{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		voiceID: strings.TrimSpace(voiceID),
		modelID: strings.TrimSpace(modelID),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

type ttsErrorResponse struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

// Synthesize implements Synthesizer.
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.voiceID == "" {
		return nil, fmt.Errorf("voice id required")
	}
	body, err := json.Marshal(ttsRequest{Text: text, ModelID: s.modelID})
	if err != nil {
		return nil, err
	}
	url := s.baseURL + "/v1/text-to-speech/" + s.voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	if s.apiKey != "" {
		req.Header.Set("xi-api-key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voice request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp ttsErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Detail.Message != "" {
			return nil, fmt.Errorf("voice api error: %s", errResp.Detail.Message)
		}
		return nil, fmt.Errorf("voice api error: %s", resp.Status)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voice read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio from voice api")
	}
	return audio, nil
}
