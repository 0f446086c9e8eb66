package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/sachai/internal/check"
	"github.com/dtnitsch/sachai/internal/db"
	"github.com/dtnitsch/sachai/internal/popup"
	"github.com/dtnitsch/sachai/internal/serve"
	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sachai",
		Usage: "Fact-check text against a local fact-check API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "Path to the config file",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Fact-check request timeout (0 = none)",
			},
			&cli.StringFlag{
				Name:  "history",
				Usage: "Path to the report history database (default: next to the binary)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Fact-check text and print the report",
				ArgsUsage: "TEXT | -",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Fact-check the readable text of this page instead of TEXT",
					},
					&cli.StringFlag{
						Name:  "field",
						Value: models.FieldAnswer,
						Usage: "Request field: answer (popup endpoint) or text (page endpoint)",
					},
					&cli.IntFlag{
						Name:  "width",
						Value: 80,
						Usage: "Width of each claim panel",
					},
				},
				Action: check.CheckAction,
			},
			{
				Name:      "select",
				Usage:     "Store text as the pending selection for the popup",
				ArgsUsage: "TEXT | -",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Select the readable text of this page instead of TEXT",
					},
				},
				Action: popup.SelectAction,
			},
			{
				Name:  "popup",
				Usage: "Fact-check the pending selection and write the popup page",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the popup HTML to this file instead of stdout",
					},
				},
				Action: popup.PopupAction,
			},
			{
				Name:  "serve",
				Usage: "Serve the fact-check page, the popup and the selection hand-off",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides server.addr)",
					},
				},
				Action: serve.ServeAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick-start reference",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
			{
				Name:  "history",
				Usage: "List stored reports",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Number of reports to show (0 = all)",
					},
				},
				Action: db.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
