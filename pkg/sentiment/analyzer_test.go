package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPAnalyzerPolarity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "I feel great today" {
			t.Errorf("unexpected text %q", req.Text)
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"polarity": 0.8})
	}))
	defer srv.Close()

	analyzer := NewHTTPAnalyzer(srv.URL, "key-123")
	score, err := analyzer.Polarity(context.Background(), "I feel great today")
	if err != nil {
		t.Fatalf("polarity: %v", err)
	}
	if score != 0.8 {
		t.Fatalf("score = %v, want 0.8", score)
	}
}

func TestHTTPAnalyzerClampsOutOfRangeScores(t *testing.T) {
	for _, tc := range []struct {
		raw  float64
		want float64
	}{
		{1.7, 1},
		{-2.4, -1},
		{0.25, 0.25},
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]float64{"polarity": tc.raw})
		}))
		analyzer := NewHTTPAnalyzer(srv.URL, "")
		score, err := analyzer.Polarity(context.Background(), "text")
		srv.Close()
		if err != nil {
			t.Fatalf("polarity(%v): %v", tc.raw, err)
		}
		if score != tc.want {
			t.Fatalf("score for raw %v = %v, want %v", tc.raw, score, tc.want)
		}
	}
}

func TestHTTPAnalyzerSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	analyzer := NewHTTPAnalyzer(srv.URL, "")
	if _, err := analyzer.Polarity(context.Background(), "text"); err == nil {
		t.Fatalf("expected error on 503 response")
	}
}
