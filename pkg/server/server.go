// Package server hosts the companion page, the popup and the selection
// hand-off over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/db"
	"github.com/dtnitsch/sachai/pkg/factcheck"
	"github.com/dtnitsch/sachai/pkg/orchestrator"
	"github.com/dtnitsch/sachai/pkg/selection"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var layouts = template.Must(template.New("layouts").ParseFS(templateFS, "templates/*.tmpl"))

// Options configures a Server. Nil clients are built from Config.
type Options struct {
	Config      models.Config
	Store       selection.Store
	History     *db.DB
	PopupClient orchestrator.Submitter
	PageClient  orchestrator.Submitter
	Logger      *slog.Logger
}

// Server routes requests to per-request orchestrator sessions.
type Server struct {
	cfg     models.Config
	store   selection.Store
	history *db.DB
	popup   orchestrator.Submitter
	page    orchestrator.Submitter
	logger  *slog.Logger
	engine  *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server: selection store is required")
	}
	if opts.History == nil {
		return nil, errors.New("server: report history is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		cfg:     opts.Config,
		store:   opts.Store,
		history: opts.History,
		popup:   opts.PopupClient,
		page:    opts.PageClient,
		logger:  opts.Logger,
	}

	if s.popup == nil {
		c, err := factcheck.NewClientFromConfig(opts.Config, models.DeploymentPopup)
		if err != nil {
			return nil, err
		}
		s.popup = c
	}
	if s.page == nil {
		c, err := factcheck.NewClientFromConfig(opts.Config, models.DeploymentPage)
		if err != nil {
			return nil, err
		}
		s.page = c
	}

	g := gin.New()
	g.Use(requestLogger(s.logger), gin.Recovery())
	g.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))
	g.SetHTMLTemplate(layouts)
	s.attachRoutes(g)
	s.engine = g

	return s, nil
}

func (s *Server) attachRoutes(g *gin.Engine) {
	g.GET("/", s.handleIndex)
	g.POST("/check", s.handleCheck)
	g.GET("/reports/:id", s.handleReport)
	g.POST("/api/fact-check", s.handleAPIFactCheck)
	g.POST("/selection", s.handleSelection)
	g.GET("/popup", s.handlePopup)
	g.POST("/popup", s.handlePopupSubmit)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
