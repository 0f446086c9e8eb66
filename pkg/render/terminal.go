package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/view"
)

var (
	colorSupported = lipgloss.Color("2")
	colorRefuted   = lipgloss.Color("1")
	colorOther     = lipgloss.Color("3")

	boldStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRefuted)
	ruleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSupported)
)

// Terminal renders reports as bordered panels for the CLI.
type Terminal struct {
	// Width of each claim panel. Zero uses 80 columns.
	Width int
}

// VerdictColor returns the panel colour of a verdict category.
func VerdictColor(category string) lipgloss.Color {
	switch category {
	case "supported":
		return colorSupported
	case "refuted":
		return colorRefuted
	default:
		return colorOther
	}
}

// Render replaces region with the terminal view of report.
func (t Terminal) Render(report *models.Report, region view.Region) error {
	if !report.Valid() {
		if err := region.Replace(errorStyle.Render(MsgInvalidReport)); err != nil {
			return err
		}
		return ErrInvalidReport
	}

	width := t.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(ruleStyle.Render("── Fact-Check Complete ──"))
	b.WriteString("\n")

	if len(report.VerifiedClaims) == 0 {
		b.WriteString(MsgNoClaims)
		b.WriteString("\n")
	}

	for i, claim := range report.VerifiedClaims {
		color := VerdictColor(claim.Category())
		title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(claim.Result)
		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(width).
			Render(claimBody(i, claim))

		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(boldStyle.Render("Summary:"))
	b.WriteString(" ")
	b.WriteString(report.Summary)

	return region.Replace(b.String())
}

func claimBody(index int, claim models.VerifiedClaim) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Claim " + strconv.Itoa(index+1) + ":"))
	b.WriteString(" ")
	b.WriteString(claim.ClaimText)
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Reasoning:"))
	b.WriteString("\n")
	b.WriteString(claim.Reasoning)
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Sources:"))
	b.WriteString("\n")

	if len(claim.Sources) == 0 {
		b.WriteString(MsgNoSources)
		return b.String()
	}
	for i, s := range claim.Sources {
		label := s.Title
		if label == "" {
			label = s.URL
		}
		b.WriteString("- " + label)
		if s.Title != "" {
			b.WriteString(" (" + s.URL + ")")
		}
		if i < len(claim.Sources)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// TerminalError renders an error message in the terminal error style.
func TerminalError(region view.Region, message string) error {
	return region.Replace(errorStyle.Render(message))
}
