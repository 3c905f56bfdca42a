// Package analyzer orchestrates the injected model capabilities over one
// text and folds their outputs into a single analysis result.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
	"BrowseLens/internal/taxonomy"
)

const (
	// maxWords caps the text handed to the models.
	maxWords = 512

	// topEmotions and topCategories bound the sequences kept on the result.
	topEmotions   = 5
	topCategories = 3
)

// Options toggles the individual analyses. The zero value disables
// everything; use AllOptions for the default-everything-on contract.
type Options struct {
	Sentiment bool
	Category  bool
	Emotions  bool
}

// AllOptions enables every analysis, the boundary default.
func AllOptions() Options {
	return Options{Sentiment: true, Category: true, Emotions: true}
}

// BatchEntry is one element of a batch response: either a result or an
// error message, never both.
type BatchEntry struct {
	Result *domain.AnalysisResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Deps wires the model capabilities into the analyzer.
type Deps struct {
	Sentiment ports.TextClassifier
	Category  ports.TextClassifier
	Emotions  ports.TextClassifier
	Logger    *slog.Logger
}

// Analyzer turns raw text into an AnalysisResult. Each enabled capability
// degrades independently: a failed model call leaves its field nil and
// records the failure under Errors, and the call itself fails only when
// every requested analysis failed.
type Analyzer struct {
	sentiment ports.TextClassifier
	category  ports.TextClassifier
	emotions  ports.TextClassifier
	logger    *slog.Logger
}

// New constructs the analyzer component.
func New(deps Deps) *Analyzer {
	return &Analyzer{
		sentiment: deps.Sentiment,
		category:  deps.Category,
		emotions:  deps.Emotions,
		logger:    deps.Logger,
	}
}

// Analyze runs the enabled analyses over one text.
func (a *Analyzer) Analyze(ctx context.Context, text, url string, opts Options) (domain.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.AnalysisResult{}, fmt.Errorf("%w: text content is required", domain.ErrInvalidInput)
	}

	result := domain.AnalysisResult{
		TextLength: len(text),
		WordCount:  len(strings.Fields(text)),
		URL:        url,
	}

	modelText := truncateWords(text, maxWords)

	requested, failed := 0, 0
	fail := func(field string, err error) {
		failed++
		if result.Errors == nil {
			result.Errors = map[string]string{}
		}
		result.Errors[field] = err.Error()
		a.warn("analysis degraded", "field", field, "url", url, "error", err)
	}

	if opts.Sentiment {
		requested++
		if scores, err := classify(ctx, a.sentiment, modelText); err != nil {
			fail("sentiment", err)
		} else {
			result.Sentiment = &domain.SentimentResult{
				Label: scores[0].Label,
				Score: scores[0].Score,
			}
		}
	}

	if opts.Category {
		requested++
		if scores, err := classify(ctx, a.category, modelText); err != nil {
			fail("category", err)
		} else {
			result.Category = a.buildCategory(scores, url)
		}
	}

	if opts.Emotions {
		requested++
		if scores, err := classify(ctx, a.emotions, modelText); err != nil {
			fail("emotions", err)
		} else {
			result.Emotions = &domain.EmotionResult{
				Dominant: scores[0],
				All:      topN(scores, topEmotions),
				Balance:  emotionalBalance(scores),
			}
		}
	}

	if requested > 0 && failed == requested {
		return result, fmt.Errorf("%w: all requested analyses failed", domain.ErrModelUnavailable)
	}

	return result, nil
}

// AnalyzeBatch analyzes texts independently with every analysis enabled.
// The response has the same length and order as the input; one item's
// failure never aborts the others. An empty input is rejected.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) ([]BatchEntry, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: at least one text required", domain.ErrInvalidInput)
	}

	entries := make([]BatchEntry, len(texts))
	for i, text := range texts {
		result, err := a.Analyze(ctx, text, "", AllOptions())
		if err != nil {
			entries[i] = BatchEntry{Error: err.Error()}
			continue
		}
		entries[i] = BatchEntry{Result: &result}
	}

	return entries, nil
}

// buildCategory shapes the zero-shot output: primary is the top label, the
// group comes from the taxonomy, and labels outside the fixed set fall back
// to the "Other" group with a warning rather than failing.
func (a *Analyzer) buildCategory(scores []domain.LabelScore, url string) *domain.CategoryResult {
	primary := scores[0]
	group, known := taxonomy.GroupFor(primary.Label)
	if !known {
		a.warn("predicted category outside taxonomy",
			"label", primary.Label, "url", url, "error", domain.ErrUnknownCategory)
	}

	return &domain.CategoryResult{
		Primary:       primary.Label,
		Confidence:    primary.Score,
		Group:         string(group),
		AllCategories: topN(scores, topCategories),
	}
}

// classify invokes a capability and normalizes its output: non-empty,
// sorted descending by score with input order preserved on ties.
func classify(ctx context.Context, model ports.TextClassifier, text string) ([]domain.LabelScore, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: capability not configured", domain.ErrModelUnavailable)
	}

	scores, err := model.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: empty model output", domain.ErrModelUnavailable)
	}

	sorted := make([]domain.LabelScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	return sorted, nil
}

func topN(scores []domain.LabelScore, n int) []domain.LabelScore {
	if len(scores) > n {
		scores = scores[:n]
	}
	out := make([]domain.LabelScore, len(scores))
	copy(out, scores)
	return out
}

func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}

func (a *Analyzer) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
