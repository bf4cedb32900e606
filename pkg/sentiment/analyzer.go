// Package sentiment wraps the external text-analysis capability that
// derives a polarity score from free text.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Analyzer scores arbitrary text with a polarity in [-1, 1].
type Analyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// HTTPAnalyzer calls a JSON sentiment endpoint. The endpoint accepts
// {"text": "..."} and responds with {"polarity": <float>}.
type HTTPAnalyzer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPAnalyzer builds an Analyzer against the given endpoint.
// apiKey can be empty for services that do not require authentication.
func NewHTTPAnalyzer(baseURL, apiKey string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Polarity float64 `json:"polarity"`
}

// Polarity implements Analyzer. Scores outside [-1, 1] are clamped.
func (a *HTTPAnalyzer) Polarity(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sentiment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("sentiment api error: %s", resp.Status)
	}
	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("sentiment decode: %w", err)
	}
	return clamp(parsed.Polarity), nil
}

func clamp(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
