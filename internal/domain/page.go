package domain

// PageContent is visible text and metadata extracted from a live page,
// used when a caller supplies a URL instead of captured text.
type PageContent struct {
	URL             string `json:"url"`
	Host            string `json:"domain"`
	Title           string `json:"title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
	MetaAuthor      string `json:"meta_author,omitempty"`
	TextLength      int    `json:"text_length"`
	Text            string `json:"visible_text"`
}
