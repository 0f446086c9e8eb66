package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/sachai/internal/common"
	dbpkg "github.com/dtnitsch/sachai/pkg/db"
	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v2"
)

const (
	inputWidth   = 40
	summaryWidth = 30
)

// HistoryAction lists stored reports, newest first.
func HistoryAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	database, err := common.OpenHistory(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	reports, err := database.ListReports(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	PrintReports(c.App.Writer, reports)
	return nil
}

// PrintReports writes reports as a fixed-width table. Input and summary
// columns are truncated by display width.
func PrintReports(w io.Writer, reports []dbpkg.ReportRecord) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports found")
		return
	}

	fmt.Fprintf(w, "%-36s %-19s %-6s %-4s %-6s %s %s\n",
		"ID", "Created", "Via", "Lang", "Claims", column("Input", inputWidth), "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 36+19+6+4+6+inputWidth+summaryWidth+6))

	for _, r := range reports {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(w, "%-36s %-19s %-6s %-4s %-6d %s %s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Deployment,
			lang,
			r.ClaimCount,
			column(r.Input, inputWidth),
			runewidth.Truncate(oneLine(r.Summary), summaryWidth, "..."),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d reports\n", len(reports))
}

// column truncates s to width display cells and pads it to exactly width.
func column(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(oneLine(s), width, "..."), width)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
