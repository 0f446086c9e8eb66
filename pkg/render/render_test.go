package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/view"
)

func flatEarthReport() *models.Report {
	return &models.Report{
		Summary: "Mostly false",
		VerifiedClaims: []models.VerifiedClaim{
			{ClaimText: "The Earth is flat.", Result: "Refuted", Reasoning: "...", Sources: []models.Source{}},
		},
	}
}

func mixedReport() *models.Report {
	long := strings.Repeat("a", 250)
	return &models.Report{
		Summary: "Mixed",
		VerifiedClaims: []models.VerifiedClaim{
			{ClaimText: "first", Result: "Supported", Reasoning: "r1", Sources: []models.Source{
				{URL: "https://a.example", Title: "A", Text: long, IsInfluential: true},
				{URL: "https://b.example"},
			}},
			{ClaimText: "second", Result: "Insufficient Information", Reasoning: "r2"},
			{ClaimText: "third", Result: "Conflicting", Reasoning: "r3", Sources: []models.Source{
				{URL: "https://c.example", Title: "C", Text: "short"},
				{URL: "https://d.example", Title: "D"},
			}},
		},
		Stats: &models.Stats{Supported: 40, Refuted: 20, Insufficient: 10, Conflicting: 30},
	}
}

func renderTo(t *testing.T, r Renderer, report *models.Report) (*goquery.Document, error) {
	t.Helper()
	region := view.NewMemoryRegion(view.Icons)
	err := r.Render(report, region)
	return region.Document(), err
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "empty", text: "", n: 150, want: ""},
		{name: "shorter than limit", text: "abc", n: 150, want: "abc..."},
		{name: "cut at limit", text: strings.Repeat("x", 160), n: 150, want: strings.Repeat("x", 150) + "..."},
		{name: "multibyte runes", text: "सच सच", n: 2, want: "सच..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.n); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPopup_FlatEarthScenario(t *testing.T) {
	doc, err := renderTo(t, Popup{}, flatEarthReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	cards := doc.Find(".claim-card")
	if cards.Length() != 1 {
		t.Fatalf("claim cards = %d, want 1", cards.Length())
	}
	if !cards.Find(".verdict-badge").HasClass("refuted") {
		t.Error("badge is missing class refuted")
	}
	if got := strings.TrimSpace(cards.Find(".no-sources").Text()); got != MsgNoSources {
		t.Errorf("sources placeholder = %q, want %q", got, MsgNoSources)
	}
	if _, open := cards.Find("details").Attr("open"); !open {
		t.Error("popup claim cards should be expanded")
	}
	if got := doc.Find(".summary").Text(); got != "Mostly false" {
		t.Errorf("summary = %q", got)
	}
}

func TestPopup_ClaimsInOrder(t *testing.T) {
	doc, err := renderTo(t, Popup{}, mixedReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantText := []string{"first", "second", "third"}
	wantClass := []string{"supported", "insufficient", "conflicting"}

	cards := doc.Find(".claim-card")
	if cards.Length() != len(wantText) {
		t.Fatalf("claim cards = %d, want %d", cards.Length(), len(wantText))
	}
	cards.Each(func(i int, s *goquery.Selection) {
		if got := s.Find(".claim-text").Text(); got != wantText[i] {
			t.Errorf("card %d text = %q, want %q", i, got, wantText[i])
		}
		if !s.Find(".verdict-badge").HasClass(wantClass[i]) {
			t.Errorf("card %d badge missing class %q", i, wantClass[i])
		}
		if got := strings.TrimSpace(s.Find("strong").Text()); got != "Claim "+string(rune('1'+i))+":" {
			t.Errorf("card %d label = %q", i, got)
		}
	})
}

func TestPopup_Sources(t *testing.T) {
	doc, err := renderTo(t, Popup{}, mixedReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	sources := doc.Find(".claim-card").First().Find(".source")
	if sources.Length() != 2 {
		t.Fatalf("sources = %d, want 2", sources.Length())
	}

	first := sources.Eq(0)
	if !first.HasClass("influential") {
		t.Error("influential source is missing its class")
	}
	if got := first.Find("a").Text(); got != "A" {
		t.Errorf("link text = %q, want A", got)
	}
	if got := first.Find(".snippet").Text(); got != strings.Repeat("a", PopupSnippetLen)+Ellipsis {
		t.Errorf("snippet length = %d, want %d", len(got), PopupSnippetLen+len(Ellipsis))
	}

	second := sources.Eq(1)
	if got := second.Find("a").Text(); got != "Source" {
		t.Errorf("fallback link text = %q, want Source", got)
	}
	if got := second.Find(".snippet").Text(); got != "" {
		t.Errorf("snippet without text = %q, want empty", got)
	}

	if got := doc.Find(".claim-card").Eq(1).Find(".no-sources").Length(); got != 1 {
		t.Errorf("claim with nil sources has %d placeholders, want 1", got)
	}
}

func TestSnippets_KeepTextVerbatim(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "less-than", text: "if a<b then c"},
		{name: "entity", text: "Use &amp; in HTML"},
		{name: "markup-like", text: `<script>alert(1)</script>Tom & Jerry`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &models.Report{VerifiedClaims: []models.VerifiedClaim{{
				Result:  "Supported",
				Sources: []models.Source{{URL: "https://x.example", Text: tt.text}},
			}}}

			popup, err := renderTo(t, Popup{}, report)
			if err != nil {
				t.Fatalf("Popup.Render() error = %v", err)
			}
			if got, want := popup.Find(".snippet").Text(), Truncate(tt.text, PopupSnippetLen); got != want {
				t.Errorf("popup snippet = %q, want %q", got, want)
			}
			if popup.Find(".snippet script").Length() != 0 {
				t.Error("popup snippet produced a script element")
			}

			page, err := renderTo(t, Page{}, report)
			if err != nil {
				t.Fatalf("Page.Render() error = %v", err)
			}
			if got, want := page.Find(".claim-source-text").Text(), Truncate(tt.text, PageSnippetLen); got != want {
				t.Errorf("page snippet = %q, want %q", got, want)
			}
		})
	}
}

func TestRenderers_NoClaims(t *testing.T) {
	for name, r := range map[string]Renderer{"popup": Popup{}, "page": Page{}} {
		t.Run(name, func(t *testing.T) {
			doc, err := renderTo(t, r, &models.Report{Summary: "nothing", VerifiedClaims: []models.VerifiedClaim{}})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got := strings.TrimSpace(doc.Find(".no-claims").Text()); got != MsgNoClaims {
				t.Errorf("no-claims message = %q", got)
			}
			if n := doc.Find(".claim-card, .claim-item").Length(); n != 0 {
				t.Errorf("claim entries = %d, want 0", n)
			}
		})
	}
}

func TestRenderers_InvalidReport(t *testing.T) {
	for name, r := range map[string]Renderer{"popup": Popup{}, "page": Page{}} {
		t.Run(name, func(t *testing.T) {
			for _, report := range []*models.Report{nil, {Summary: "no claims"}} {
				doc, err := renderTo(t, r, report)
				if !errors.Is(err, ErrInvalidReport) {
					t.Fatalf("Render() error = %v, want ErrInvalidReport", err)
				}
				if got := doc.Find("p.error").Text(); got != MsgInvalidReport {
					t.Errorf("error message = %q", got)
				}
				if doc.Find("h2, #overview").Length() != 0 {
					t.Error("invalid report rendered report sections")
				}
			}
		})
	}
}

func TestPage_ProgressSegments(t *testing.T) {
	doc, err := renderTo(t, Page{}, mixedReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := map[string]string{
		"supported":    "width: 40%; left: 0%;",
		"refuted":      "width: 20%; left: 40%;",
		"insufficient": "width: 10%; left: 60%;",
		"conflicting":  "width: 30%; left: 70%;",
	}
	for name, style := range want {
		got, _ := doc.Find("#progress-" + name).Attr("style")
		if got != style {
			t.Errorf("progress-%s style = %q, want %q", name, got, style)
		}
		if pct := doc.Find("#" + name + "-pct").Text(); !strings.HasSuffix(pct, "%") {
			t.Errorf("%s-pct = %q", name, pct)
		}
	}
	if got := doc.Find("#claims-badge").Text(); got != "3 claims verified" {
		t.Errorf("claims badge = %q", got)
	}
}

func TestPage_ComputesMissingStats(t *testing.T) {
	report := mixedReport()
	report.Stats = nil

	doc, err := renderTo(t, Page{}, report)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := doc.Find("#supported-pct").Text(); got != "33.3%" {
		t.Errorf("supported-pct = %q, want 33.3%%", got)
	}
}

func TestPage_AccordionCollapsedByDefault(t *testing.T) {
	doc, err := renderTo(t, Page{}, mixedReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	items := doc.Find(".claim-item")
	if items.Length() != 3 {
		t.Fatalf("claim items = %d, want 3", items.Length())
	}
	items.Each(func(i int, s *goquery.Selection) {
		if !s.Find(".claim-content").HasClass("hidden") {
			t.Errorf("claim %d content is not hidden", i)
		}
		icon, _ := s.Find(".chevron").Attr("data-lucide")
		if icon != "chevron-down" {
			t.Errorf("claim %d chevron = %q", i, icon)
		}
		if glyph := s.Find(".chevron").Text(); glyph != "▾" {
			t.Errorf("claim %d glyph = %q", i, glyph)
		}
	})

	if got := doc.Find("#claim-content-1 .result-badge").Length(); got != 0 {
		t.Error("badge rendered inside content instead of header")
	}
	if !doc.Find("#claim-header-1 .result-badge").HasClass("result-insufficient") {
		t.Error("claim 1 badge missing result-insufficient")
	}
}

func TestPage_SnippetLengths(t *testing.T) {
	doc, err := renderTo(t, Page{}, mixedReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	detail := doc.Find("#claim-content-0 .claim-source-text").First().Text()
	if detail != strings.Repeat("a", PageSnippetLen)+Ellipsis {
		t.Errorf("claim detail snippet has %d chars", len(detail))
	}

	top := doc.Find("#sources-list .source-item")
	if top.Length() != TopSourcesCount {
		t.Fatalf("top sources = %d, want %d", top.Length(), TopSourcesCount)
	}
	if got := top.First().Find(".source-text").Text(); got != strings.Repeat("a", TopSourceSnipLen)+Ellipsis {
		t.Errorf("top source snippet has %d chars", len(got))
	}
}

func TestTerminal_Render(t *testing.T) {
	var buf bytes.Buffer
	region := view.NewTextRegion(&buf)

	if err := (Terminal{Width: 60}).Render(flatEarthReport(), region); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Refuted", "The Earth is flat.", MsgNoSources, "Mostly false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminal_InvalidReport(t *testing.T) {
	var buf bytes.Buffer
	err := (Terminal{}).Render(&models.Report{}, view.NewTextRegion(&buf))
	if !errors.Is(err, ErrInvalidReport) {
		t.Fatalf("Render() error = %v, want ErrInvalidReport", err)
	}
	if !strings.Contains(buf.String(), MsgInvalidReport) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestVerdictColor(t *testing.T) {
	if VerdictColor("supported") == VerdictColor("refuted") {
		t.Error("supported and refuted share a colour")
	}
	if VerdictColor("insufficient") != VerdictColor("conflicting") {
		t.Error("other verdicts should share the fallback colour")
	}
}
