package check

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/sachai/internal/common"
	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/capture"
	"github.com/dtnitsch/sachai/pkg/factcheck"
	"github.com/dtnitsch/sachai/pkg/orchestrator"
	"github.com/dtnitsch/sachai/pkg/render"
	"github.com/dtnitsch/sachai/pkg/view"
	"github.com/urfave/cli/v2"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

// CheckAction fact-checks the argument text, or the readable text of --url,
// and prints the report as terminal panels.
func CheckAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := common.NewLogger(c, cfg, os.Stderr)
	ctx := c.Context

	text, err := common.InputText(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.IsSet("url") {
		captured, err := capture.New(cfg.Client.Timeout).FromURL(ctx, c.String("url"))
		if err != nil {
			logger.Error("failed to capture page", "url", c.String("url"), "error", err)
			return cli.Exit(fmt.Sprintf("failed to capture %s: %v", c.String("url"), err), 1)
		}
		logger.Info("captured page", "url", captured.URL, "language", captured.Language, "chars", len(captured.Text))
		text = captured.Text
	}

	field := c.String("field")
	if err := models.ValidateField(field); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	deployment := models.DeploymentPopup
	if field == models.FieldText {
		deployment = models.DeploymentPage
	}
	client, err := factcheck.NewClientFromConfig(cfg, deployment)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	out := c.App.Writer
	if !c.Bool("quiet") {
		fmt.Fprintln(out, bannerStyle.Render("Sach AI"))
		fmt.Fprintln(out, "--- Local Fact-Checker ---")
	}

	session := orchestrator.New(orchestrator.Options{
		Client:    client,
		Renderer:  render.Terminal{Width: c.Int("width")},
		Results:   view.NewTextRegion(out),
		Presenter: orchestrator.TerminalPresenter{},
		Logger:    logger,
		OnReport:  common.HistoryHook(cfg, deployment, logger),
	})

	if _, err := session.Submit(ctx, text); err != nil {
		return cli.Exit("", 1)
	}
	return nil
}
