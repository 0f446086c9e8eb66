// Package orchestrator drives one UI instance through a fact-check: input
// validation, the single in-flight request, loading state, and handing the
// result to a renderer or an error presenter.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/factcheck"
	"github.com/dtnitsch/sachai/pkg/render"
	"github.com/dtnitsch/sachai/pkg/selection"
	"github.com/dtnitsch/sachai/pkg/view"
)

// ErrBusy is returned when Submit is called while a request is in flight.
var ErrBusy = errors.New("a fact-check is already in progress")

// Submitter sends text to the fact-check API.
type Submitter interface {
	Submit(ctx context.Context, text string) (*models.Report, error)
}

// ReportHook is called after a report has been rendered.
type ReportHook func(ctx context.Context, text string, report *models.Report) error

// Options configures a Session.
type Options struct {
	Client    Submitter
	Renderer  render.Renderer
	Results   view.Region
	Controls  *view.Controls
	Presenter Presenter
	Logger    *slog.Logger

	// ClearOnSubmit empties the results region when a request starts.
	ClearOnSubmit bool
	// OnReport runs after a successful render. Its error is logged only.
	OnReport ReportHook
}

// Session is one UI instance: an input, a submit control and a results region.
type Session struct {
	opts     Options
	inFlight atomic.Bool
}

// New creates a session. Controls and Logger default when nil.
func New(opts Options) *Session {
	if opts.Controls == nil {
		opts.Controls = view.NewControls("")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{opts: opts}
}

// NewPopup creates a session that renders claim cards and reports errors
// inline in the results region.
func NewPopup(client Submitter, results view.Region, logger *slog.Logger) *Session {
	return New(Options{
		Client:        client,
		Renderer:      render.Popup{},
		Results:       results,
		Controls:      view.NewControls(""),
		Presenter:     InlinePresenter{},
		Logger:        logger,
		ClearOnSubmit: true,
	})
}

// NewPage creates a session that renders the accordion page and reports
// errors as alerts, leaving earlier results in place.
func NewPage(client Submitter, results view.Region, logger *slog.Logger) (*Session, *AlertPresenter) {
	alerts := &AlertPresenter{}
	return New(Options{
		Client:    client,
		Renderer:  render.Page{},
		Results:   results,
		Controls:  view.NewControls(view.LabelBusy),
		Presenter: alerts,
		Logger:    logger,
	}), alerts
}

// Controls returns the session controls.
func (s *Session) Controls() *view.Controls {
	return s.opts.Controls
}

// Input returns the current input value.
func (s *Session) Input() string {
	return s.opts.Controls.State().Input
}

// SetReportHook sets the hook run after each rendered report.
func (s *Session) SetReportHook(hook ReportHook) {
	s.opts.OnReport = hook
}

// Submit fact-checks text. Blank text is reported as a validation error
// without a request. The loading state is cleared on every path.
func (s *Session) Submit(ctx context.Context, text string) (*models.Report, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.inFlight.Store(false)

	log := s.opts.Logger
	s.opts.Controls.SetInput(text)

	text = strings.TrimSpace(text)
	if text == "" {
		if err := s.opts.Presenter.Validation(s.opts.Results); err != nil {
			log.Error("failed to present validation error", "error", err)
		}
		return nil, factcheck.ErrEmptyInput
	}

	s.opts.Controls.SetLoading(true)
	defer s.opts.Controls.SetLoading(false)

	if s.opts.ClearOnSubmit {
		if err := s.opts.Results.Replace(""); err != nil {
			log.Error("failed to clear results", "error", err)
		}
	}

	log.Debug("submitting fact-check", "chars", len(text))
	report, err := s.opts.Client.Submit(ctx, text)
	if err != nil {
		log.Error("fact-check failed", "error", err)
		if perr := s.opts.Presenter.Failure(s.opts.Results, err); perr != nil {
			log.Error("failed to present error", "error", perr)
		}
		return nil, err
	}

	if err := s.opts.Renderer.Render(report, s.opts.Results); err != nil {
		log.Warn("failed to render report", "error", err)
		return nil, err
	}
	log.Info("fact-check complete", "claims", len(report.VerifiedClaims))

	if s.opts.OnReport != nil {
		if err := s.opts.OnReport(ctx, text, report); err != nil {
			log.Error("report hook failed", "error", err)
		}
	}
	return report, nil
}

// AutoSubmit takes a pending selection from store and, when there is one,
// populates the input and submits it once. submitted is false when nothing
// was pending.
func (s *Session) AutoSubmit(ctx context.Context, store selection.Store) (submitted bool, report *models.Report, err error) {
	text, ok, err := store.Take(ctx)
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, nil
	}

	s.opts.Logger.Info("submitting pending selection")
	report, err = s.Submit(ctx, text)
	return true, report, err
}
