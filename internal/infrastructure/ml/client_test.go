package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"BrowseLens/internal/taxonomy"
)

func TestClassifyRoutesAndAuth(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"POSITIVE", "NEGATIVE"},
			"scores": []float64{0.9, 0.1},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")
	scores, err := client.Sentiment().Classify(context.Background(), "great article")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	if gotPath != "/sentiment" {
		t.Fatalf("path = %q, want /sentiment", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content-type = %q", gotContentType)
	}
	if gotBody["text"] != "great article" {
		t.Fatalf("request text = %v", gotBody["text"])
	}
	if _, ok := gotBody["candidate_labels"]; ok {
		t.Fatal("sentiment request must not carry candidate_labels")
	}

	if len(scores) != 2 {
		t.Fatalf("len = %d, want 2", len(scores))
	}
	if scores[0].Label != "POSITIVE" || scores[0].Score != 0.9 {
		t.Fatalf("scores[0] = %+v", scores[0])
	}
}

func TestClassifyCategoriesSendsTaxonomy(t *testing.T) {
	t.Parallel()

	var gotBody struct {
		Text            string   `json:"text"`
		CandidateLabels []string `json:"candidate_labels"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("path = %q, want /classify", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"Programming"},
			"scores": []float64{0.95},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Categories().Classify(context.Background(), "how slices grow"); err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	want := taxonomy.Labels()
	if len(gotBody.CandidateLabels) != len(want) {
		t.Fatalf("candidate_labels len = %d, want %d", len(gotBody.CandidateLabels), len(want))
	}
	for i, label := range want {
		if gotBody.CandidateLabels[i] != label {
			t.Fatalf("candidate_labels[%d] = %q, want %q", i, gotBody.CandidateLabels[i], label)
		}
	}
}

func TestClassifyNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Emotions().Classify(context.Background(), "some text")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("error = %v, want status mentioned", err)
	}
}

func TestClassifyMismatchedArrays(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"joy", "sadness"},
			"scores": []float64{0.7},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Emotions().Classify(context.Background(), "some text")
	if err == nil {
		t.Fatal("expected error for mismatched label/score arrays")
	}
}

func TestClassifyNoAuthHeaderWithoutKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{}, "scores": []float64{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Sentiment().Classify(context.Background(), "text"); err != nil {
		t.Fatalf("Classify error: %v", err)
	}
}
