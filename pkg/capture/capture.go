// Package capture extracts the readable text of a web page so it can be
// fact-checked like a text selection.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sachai/pkg/fetcher"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pemistahl/lingua-go"
)

// ErrNoText is returned when a page has no readable text.
var ErrNoText = errors.New("page has no readable text")

// Capture is the readable content of one page.
type Capture struct {
	URL      string
	Title    string
	Text     string
	Language string
}

// Capturer fetches pages and extracts their main text.
type Capturer struct {
	fetcher *fetcher.Fetcher
}

// New creates a capturer whose requests time out after timeout.
func New(timeout time.Duration) *Capturer {
	return &Capturer{fetcher: fetcher.NewFetcher(timeout)}
}

// NewWithFetcher creates a capturer using f.
func NewWithFetcher(f *fetcher.Fetcher) *Capturer {
	return &Capturer{fetcher: f}
}

// FromURL fetches rawURL and returns its readable text.
func (c *Capturer) FromURL(ctx context.Context, rawURL string) (*Capture, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	resp, err := c.fetcher.GetHtmlBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if final, err := url.Parse(resp.FinalURL); err == nil {
		parsedURL = final
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(resp.Body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	text, err := mainText(article.Content)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoText, rawURL)
	}

	return &Capture{
		URL:      resp.FinalURL,
		Title:    normalizeText(article.Title),
		Text:     text,
		Language: DetectLanguage(text),
	}, nil
}

// articlePolicy drops active content such as scripts from readability output.
var articlePolicy = bluemonday.UGCPolicy()

// mainText joins the text blocks of readability's cleaned HTML.
func mainText(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articlePolicy.Sanitize(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	var blocks []string
	doc.Find("h1,h2,h3,h4,p,li,blockquote").Each(func(i int, s *goquery.Selection) {
		// Nested blocks are picked up through their parent.
		if s.ParentsFiltered("p,li,blockquote").Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return normalizeText(doc.Text()), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Languages are the languages DetectLanguage distinguishes.
var Languages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Hindi,
}

// DetectLanguage returns the lower-case ISO 639-1 code of text, or "" when
// the language cannot be told.
func DetectLanguage(text string) string {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(Languages...).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
