package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/capture"
	dbpkg "github.com/dtnitsch/sachai/pkg/db"
	"github.com/dtnitsch/sachai/pkg/orchestrator"
	"github.com/dtnitsch/sachai/pkg/selection"
	"github.com/urfave/cli/v2"
)

// LoadConfig reads the file named by --config and applies flag overrides.
func LoadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("timeout") {
		cfg.Client.Timeout = c.Duration("timeout")
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("history") {
		cfg.History.Path = c.String("history")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// NewLogger returns a JSON logger on w. --quiet forces the error level and
// --verbose the debug level; otherwise the configured level applies.
func NewLogger(c *cli.Context, cfg models.Config, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch {
	case c.Bool("quiet"):
		logLevel = slog.LevelError
	case c.Bool("verbose"):
		logLevel = slog.LevelDebug
	default:
		logLevel = ParseLevel(cfg.Log.Level)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenSelection opens the pending-selection slot for a CLI process. The
// in-memory backend cannot outlive one command, so the file backend is
// used in its place.
func OpenSelection(cfg models.Config) (selection.Store, error) {
	sc := cfg.Selection
	if sc.Backend == models.BackendMemory || sc.Backend == "" {
		sc.Backend = models.BackendFile
	}
	return selection.Open(sc)
}

// OpenHistory opens the report history database.
func OpenHistory(cfg models.Config) (*dbpkg.DB, error) {
	database, err := dbpkg.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// HistoryHook stores each rendered report in the history database. A
// history that cannot be opened only costs the record, not the check.
func HistoryHook(cfg models.Config, deployment string, logger *slog.Logger) orchestrator.ReportHook {
	return func(_ context.Context, text string, report *models.Report) error {
		database, err := OpenHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		id, err := database.InsertReport(deployment, text, capture.DetectLanguage(text), report)
		if err != nil {
			return err
		}
		logger.Debug("report stored", "report", id, "deployment", deployment)
		return nil
	}
}

// InputText returns the command arguments joined by spaces, or stdin when
// the only argument is "-".
func InputText(c *cli.Context) (string, error) {
	if c.NArg() == 1 && c.Args().First() == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(c.Args().Slice(), " "), nil
}
