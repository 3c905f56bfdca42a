package domain

// LabelScore is a single classifier output: a label with its score in [0,1].
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentResult is the polarity verdict for one text.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EmotionBalance summarizes net positive vs negative affect across detected emotions.
type EmotionBalance struct {
	PositiveScore float64 `json:"positive_score"`
	NegativeScore float64 `json:"negative_score"`
	Balance       float64 `json:"balance"`
	IsBalanced    bool    `json:"is_balanced"`
}

// EmotionResult holds detected emotions sorted descending by score.
// Dominant is always All[0] when All is non-empty.
type EmotionResult struct {
	Dominant LabelScore     `json:"dominant"`
	All      []LabelScore   `json:"all_emotions"`
	Balance  EmotionBalance `json:"balance"`
}

// CategoryResult is the zero-shot classification outcome. Primary is always
// AllCategories[0].Label; Group is the taxonomy bucket Primary maps to.
type CategoryResult struct {
	Primary       string       `json:"primary"`
	Confidence    float64      `json:"confidence"`
	Group         string       `json:"category_group"`
	AllCategories []LabelScore `json:"all_categories"`
}

// AnalysisResult is the combined multi-model verdict for one text. A nil
// sub-result means the corresponding analysis was disabled or failed; failed
// fields carry an entry in Errors keyed by field name ("sentiment",
// "category", "emotions"). The result is immutable once produced.
type AnalysisResult struct {
	TextLength int    `json:"text_length"`
	WordCount  int    `json:"word_count"`
	URL        string `json:"url,omitempty"`

	Sentiment *SentimentResult `json:"sentiment,omitempty"`
	Category  *CategoryResult  `json:"category,omitempty"`
	Emotions  *EmotionResult   `json:"emotions,omitempty"`

	Errors map[string]string `json:"errors,omitempty"`
}

// ClassifiedCategory returns the primary category label or "" when category
// analysis is absent.
func (r AnalysisResult) ClassifiedCategory() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.Primary
}

// SentimentLabel returns the sentiment label or "" when sentiment analysis
// is absent.
func (r AnalysisResult) SentimentLabel() string {
	if r.Sentiment == nil {
		return ""
	}
	return r.Sentiment.Label
}
