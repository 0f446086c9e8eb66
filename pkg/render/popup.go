package render

import (
	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/view"
)

// Popup renders always-expanded claim cards.
type Popup struct{}

type popupView struct {
	Summary string
	Claims  []claimView
}

// Render replaces region with the popup view of report.
func (Popup) Render(report *models.Report, region view.Region) error {
	if !report.Valid() {
		return renderInvalid(region)
	}
	return execute(region, "popup", popupView{
		Summary: report.Summary,
		Claims:  newClaimViews(report.VerifiedClaims, PopupSnippetLen),
	})
}
