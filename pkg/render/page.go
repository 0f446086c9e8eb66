package render

import (
	"fmt"
	"html/template"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/view"
)

// Page renders the overview and a collapsed claims accordion.
type Page struct{}

type segmentView struct {
	models.Segment
	Style template.CSS
}

type pageView struct {
	Summary    string
	Segments   []segmentView
	TopSources []sourceView
	Claims     []claimView
}

// Render replaces region with the page view of report. When the report
// carries no stats they are derived from the claims.
func (Page) Render(report *models.Report, region view.Region) error {
	if !report.Valid() {
		return renderInvalid(region)
	}

	stats := report.StatsOrComputed()
	segments := stats.Segments()
	segmentViews := make([]segmentView, len(segments))
	for i, s := range segments {
		segmentViews[i] = segmentView{
			Segment: s,
			Style:   template.CSS(fmt.Sprintf("width: %s; left: %s;", formatPercent(s.Width), formatPercent(s.Left))),
		}
	}

	return execute(region, "page", pageView{
		Summary:    report.Summary,
		Segments:   segmentViews,
		TopSources: newSourceViews(report.TopSources(TopSourcesCount), TopSourceSnipLen),
		Claims:     newClaimViews(report.VerifiedClaims, PageSnippetLen),
	})
}
