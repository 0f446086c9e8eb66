package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/sachai/internal/common"
	"github.com/dtnitsch/sachai/pkg/selection"
	"github.com/dtnitsch/sachai/pkg/server"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

// ServeAction hosts the page, the popup and the selection hand-off until
// interrupted.
func ServeAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := common.NewLogger(c, cfg, os.Stderr)
	if !c.Bool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := selection.Open(cfg.Selection)
	if err != nil {
		logger.Error("failed to open selection store", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	history, err := common.OpenHistory(cfg)
	if err != nil {
		logger.Error("failed to open history", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer history.Close()

	srv, err := server.New(server.Options{
		Config:  cfg,
		Store:   store,
		History: history,
		Logger:  logger,
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"popup_endpoint", cfg.Popup.Endpoint,
		"page_endpoint", cfg.Page.Endpoint,
		"selection_backend", cfg.Selection.Backend,
		"history", history.Path(),
	)
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
