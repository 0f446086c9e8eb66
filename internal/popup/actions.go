package popup

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/dtnitsch/sachai/internal/common"
	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/capture"
	"github.com/dtnitsch/sachai/pkg/factcheck"
	"github.com/dtnitsch/sachai/pkg/orchestrator"
	"github.com/dtnitsch/sachai/pkg/selection"
	"github.com/dtnitsch/sachai/pkg/server"
	"github.com/dtnitsch/sachai/pkg/storage"
	"github.com/dtnitsch/sachai/pkg/view"
	"github.com/urfave/cli/v2"
)

// SelectAction stores the argument text, or the readable text of --url, as
// the pending selection for the next popup.
func SelectAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := common.NewLogger(c, cfg, os.Stderr)

	text, err := common.InputText(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.IsSet("url") {
		captured, err := capture.New(cfg.Client.Timeout).FromURL(c.Context, c.String("url"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to capture %s: %v", c.String("url"), err), 1)
		}
		text = captured.Text
	}

	store, err := common.OpenSelection(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	if pending, err := store.Pending(c.Context); err == nil && pending {
		logger.Info("replacing pending selection")
	}
	if err := store.Put(c.Context, text); err != nil {
		if errors.Is(err, selection.ErrEmptySelection) {
			return cli.Exit("nothing selected", 1)
		}
		return cli.Exit(err.Error(), 1)
	}
	logger.Info("selection stored", "backend", cfg.Selection.Backend, "chars", len(text))
	return nil
}

// PopupAction takes the pending selection, fact-checks it once and writes
// the popup document to --out or stdout.
func PopupAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := common.NewLogger(c, cfg, os.Stderr)

	store, err := common.OpenSelection(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	client, err := factcheck.NewClientFromConfig(cfg, models.DeploymentPopup)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	region := view.NewMemoryRegion(view.Icons)
	session := orchestrator.NewPopup(client, region, logger)
	session.SetReportHook(common.HistoryHook(cfg, models.DeploymentPopup, logger))

	submitted, _, err := session.AutoSubmit(c.Context, store)
	if err != nil && !submitted {
		return cli.Exit(fmt.Sprintf("failed to read pending selection: %v", err), 1)
	}
	if !submitted {
		logger.Info("no pending selection")
	}

	var buf bytes.Buffer
	if err := server.WritePopup(&buf, session.Controls().State(), region); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if out := c.String("out"); out != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(out, buf.Bytes()); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		logger.Info("popup written", "path", out)
		return nil
	}
	_, err = c.App.Writer.Write(buf.Bytes())
	return err
}
