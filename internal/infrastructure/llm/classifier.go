// Package llm provides a category classifier backed by an LLM with
// structured output. It serves as the zero-shot capability when no
// dedicated inference service is configured.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
	"BrowseLens/internal/taxonomy"
)

const classifierInstructions = "You are a zero-shot content classifier. " +
	"Given a snippet of webpage text, score how well each candidate category " +
	"describes it. Return the three best-matching categories with scores in " +
	"[0,1], best first. Use only candidate categories verbatim."

// classifyResponse is the structured output contract for one classification.
type classifyResponse struct {
	Categories []struct {
		Label string  `json:"label" jsonschema:"description=Candidate category, verbatim"`
		Score float64 `json:"score" jsonschema:"description=Match score in [0,1]"`
	} `json:"categories"`
}

var classifySchema = generateSchema[classifyResponse]()

// Classifier scores text against the fixed taxonomy via an LLM call.
type Classifier struct {
	client     *openai.Client
	model      string
	candidates []string
}

var _ ports.TextClassifier = (*Classifier)(nil)

// NewClassifier builds a classifier for the given API key and model.
func NewClassifier(apiKey, model string) *Classifier {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Classifier{
		client:     &client,
		model:      model,
		candidates: taxonomy.Labels(),
	}
}

// Classify scores the text against every taxonomy label.
func (c *Classifier) Classify(ctx context.Context, text string) ([]domain.LabelScore, error) {
	if c.client == nil || c.model == "" {
		return nil, fmt.Errorf("llm classifier misconfigured")
	}

	input := fmt.Sprintf("Candidate categories:\n%s\n\nText:\n%s",
		strings.Join(c.candidates, "\n"), text)

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(500),
		Instructions:    openai.String(classifierInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "CategoryScores",
					Schema:      classifySchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Scored category candidates"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("classify via llm: %w", err)
	}

	var out classifyResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.OutputText())), &out); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}

	return toLabelScores(out)
}

func toLabelScores(out classifyResponse) ([]domain.LabelScore, error) {
	if len(out.Categories) == 0 {
		return nil, fmt.Errorf("llm returned no categories")
	}

	scores := make([]domain.LabelScore, 0, len(out.Categories))
	for _, cat := range out.Categories {
		score := cat.Score
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores = append(scores, domain.LabelScore{Label: cat.Label, Score: score})
	}
	return scores, nil
}

// callWithRetry retries rate-limit and server errors with a short backoff.
func (c *Classifier) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	waits := []time.Duration{2 * time.Second, 10 * time.Second}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := c.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err) || attempt == maxRetries-1 {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waits[attempt]):
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "server_error")
}

// generateSchema reflects a strict JSON schema the Responses API accepts:
// no references, no additional properties, every field required.
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	raw, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		panic(err)
	}
	markRequired(schema)
	return schema
}

// markRequired walks the schema marking every property required, which
// strict structured output demands.
func markRequired(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
			for _, prop := range props {
				if m, ok := prop.(map[string]any); ok {
					markRequired(m)
				}
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		markRequired(items)
	}
}
