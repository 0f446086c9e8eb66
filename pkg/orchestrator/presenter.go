package orchestrator

import (
	"sync"

	"github.com/dtnitsch/sachai/pkg/render"
	"github.com/dtnitsch/sachai/pkg/view"
)

// User-facing error messages.
const (
	MsgPopupValidation = "Please enter text to analyze."
	MsgPopupFailure    = "An error occurred. Make sure the fact-check server is running."
	MsgPageValidation  = "Please enter some text to analyze."
	MsgPageFailure     = "An error occurred while processing your request. Please try again."
)

// Presenter reports validation and request failures to the user.
type Presenter interface {
	Validation(results view.Region) error
	Failure(results view.Region, err error) error
}

// InlinePresenter replaces the results region with an error block.
type InlinePresenter struct{}

func (InlinePresenter) Validation(results view.Region) error {
	return render.Error(results, MsgPopupValidation)
}

func (InlinePresenter) Failure(results view.Region, err error) error {
	return render.ErrorWithDetails(results, MsgPopupFailure, err.Error())
}

// AlertPresenter queues alert messages and leaves the results region alone.
type AlertPresenter struct {
	mu     sync.Mutex
	alerts []string
}

func (p *AlertPresenter) Validation(view.Region) error {
	p.push(MsgPageValidation)
	return nil
}

func (p *AlertPresenter) Failure(view.Region, error) error {
	p.push(MsgPageFailure)
	return nil
}

func (p *AlertPresenter) push(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, msg)
}

// Alerts returns and clears the queued alerts.
func (p *AlertPresenter) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.alerts
	p.alerts = nil
	return out
}

// TerminalPresenter writes styled errors to a terminal region.
type TerminalPresenter struct{}

func (TerminalPresenter) Validation(results view.Region) error {
	return render.TerminalError(results, MsgPopupValidation)
}

func (TerminalPresenter) Failure(results view.Region, err error) error {
	return render.TerminalError(results, "An unexpected error occurred: "+err.Error())
}
