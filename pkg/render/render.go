// Package render turns fact-check reports into display fragments for the
// popup, the companion page and the terminal.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/view"
)

// Snippet prefix lengths, in characters.
const (
	PopupSnippetLen  = 150
	PageSnippetLen   = 200
	TopSourcesCount  = 3
	TopSourceSnipLen = 150
)

// Ellipsis is appended to every non-empty snippet.
const Ellipsis = "..."

// Messages shown in place of report content.
const (
	MsgInvalidReport = "Received an invalid report."
	MsgNoClaims      = "No verifiable claims were found."
	MsgNoSources     = "No sources were found."
)

// ErrInvalidReport is returned when a report has no verified_claims sequence.
var ErrInvalidReport = errors.New("received an invalid report")

// Renderer replaces a region's content with a rendered report.
type Renderer interface {
	Render(report *models.Report, region view.Region) error
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"pct": formatPercent,
}).ParseFS(templateFS, "templates/*.tmpl"))

// Truncate returns the first n characters of text followed by Ellipsis,
// or "" when text is empty.
func Truncate(text string, n int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + Ellipsis
}

// formatPercent formats a percentage with at most one decimal place.
func formatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "%"
}

type sourceView struct {
	URL         string
	LinkText    string
	Snippet     string
	Influential bool
}

type claimView struct {
	Index     int
	Number    int
	Category  string
	Result    string
	Text      string
	Reasoning string
	Sources   []sourceView
}

func newSourceViews(sources []models.Source, n int) []sourceView {
	views := make([]sourceView, len(sources))
	for i, s := range sources {
		views[i] = sourceView{
			URL:         s.URL,
			LinkText:    s.LinkText(),
			Snippet:     Truncate(s.Text, n),
			Influential: s.IsInfluential,
		}
	}
	return views
}

func newClaimViews(claims []models.VerifiedClaim, snippetLen int) []claimView {
	views := make([]claimView, len(claims))
	for i, c := range claims {
		views[i] = claimView{
			Index:     i,
			Number:    i + 1,
			Category:  c.Category(),
			Result:    c.Result,
			Text:      c.ClaimText,
			Reasoning: c.Reasoning,
			Sources:   newSourceViews(c.Sources, snippetLen),
		}
	}
	return views
}

func execute(region view.Region, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return region.Replace(buf.String())
}

// renderInvalid replaces the region with the invalid-report message.
func renderInvalid(region view.Region) error {
	if err := execute(region, "error", MsgInvalidReport); err != nil {
		return err
	}
	return ErrInvalidReport
}

// Error replaces the region with an inline error block.
func Error(region view.Region, message string) error {
	return execute(region, "error", message)
}

// ErrorWithDetails replaces the region with an inline error block that
// carries the underlying error message on a separate line.
func ErrorWithDetails(region view.Region, message, details string) error {
	return execute(region, "error-details", struct{ Message, Details string }{message, details})
}
