package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
	"BrowseLens/internal/taxonomy"
)

// Client talks to the external inference service that hosts the pretrained
// sentiment, emotion, and zero-shot models. The service owns model loading
// and caching; this side only ships text and reads labeled scores.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Sentiment returns the polarity capability.
func (c *Client) Sentiment() ports.TextClassifier {
	return capability{client: c, path: "/sentiment"}
}

// Emotions returns the emotion-detection capability.
func (c *Client) Emotions() ports.TextClassifier {
	return capability{client: c, path: "/emotions"}
}

// Categories returns the zero-shot capability, constrained to the fixed
// taxonomy labels.
func (c *Client) Categories() ports.TextClassifier {
	return capability{client: c, path: "/classify", candidates: taxonomy.Labels()}
}

// capability binds one model route on the inference service.
type capability struct {
	client     *Client
	path       string
	candidates []string
}

var _ ports.TextClassifier = capability{}

// Classify posts text to the bound route and decodes parallel label/score
// arrays, preserving the order the model returned them.
func (c capability) Classify(ctx context.Context, text string) ([]domain.LabelScore, error) {
	payload := map[string]any{"text": text}
	if len(c.candidates) > 0 {
		payload["candidate_labels"] = c.candidates
	}

	var resp struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := c.client.post(ctx, c.path, payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("inference %s: %d labels for %d scores", c.path, len(resp.Labels), len(resp.Scores))
	}

	scores := make([]domain.LabelScore, len(resp.Labels))
	for i, label := range resp.Labels {
		scores[i] = domain.LabelScore{Label: label, Score: resp.Scores[i]}
	}
	return scores, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
