// Package scraper extracts visible text and metadata from live pages for
// the analyze-by-URL path.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
)

const (
	// maxTextChars caps extracted visible text before analysis.
	maxTextChars = 3000

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// strippedTags are removed before text extraction: non-content markup plus
// page chrome.
const strippedTags = "script, style, noscript, svg, video, img, iframe, header, footer"

// Extractor fetches a page and pulls its visible text and meta tags.
type Extractor struct {
	http   *http.Client
	logger *slog.Logger
}

var _ ports.PageExtractor = (*Extractor)(nil)

// NewExtractor builds an extractor; pass nil to use a default client.
func NewExtractor(client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Extractor{http: client, logger: logger}
}

// Extract downloads the page and returns collapsed visible text (capped at
// maxTextChars), the title, and description/keywords/author meta values.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (domain.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.http.Do(req)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.PageContent{}, fmt.Errorf("fetch page: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	description, keywords, author := metaValues(doc)

	doc.Find(strippedTags).Remove()
	text := collapseWhitespace(doc.Find("body").Text())
	fullLen := len(text)
	if fullLen > maxTextChars {
		text = text[:maxTextChars] + "..."
	}

	if e.logger != nil {
		e.logger.Debug("page extracted", "url", rawURL, "chars", fullLen)
	}

	return domain.PageContent{
		URL:             rawURL,
		Host:            domain.HostOf(rawURL),
		Title:           title,
		MetaDescription: description,
		MetaKeywords:    keywords,
		MetaAuthor:      author,
		TextLength:      fullLen,
		Text:            text,
	}, nil
}

func metaValues(doc *goquery.Document) (description, keywords, author string) {
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content := strings.TrimSpace(sel.AttrOr("content", ""))
		switch sel.AttrOr("name", "") {
		case "description":
			description = content
		case "keywords":
			keywords = content
		case "author":
			author = content
		}
	})
	return description, keywords, author
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
