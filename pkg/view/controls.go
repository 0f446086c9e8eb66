package view

import "sync"

// Button labels.
const (
	LabelIdle = "Fact-Check"
	LabelBusy = "Analyzing..."
)

// ControlState is a snapshot of the input, submit and loading controls.
type ControlState struct {
	Input         string
	Loading       bool
	SubmitEnabled bool
	Label         string
}

// Controls tracks the input field, the submit control and the loading
// indicator of one UI instance.
type Controls struct {
	mu        sync.Mutex
	input     string
	loading   bool
	busyLabel string
}

// NewControls creates idle controls. busyLabel is shown on the submit
// control while loading; empty keeps the idle label.
func NewControls(busyLabel string) *Controls {
	return &Controls{busyLabel: busyLabel}
}

// SetInput populates the input field.
func (c *Controls) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// SetLoading shows or clears the loading state. The submit control is
// disabled exactly while loading.
func (c *Controls) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

// State returns the current control state.
func (c *Controls) State() ControlState {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := LabelIdle
	if c.loading && c.busyLabel != "" {
		label = c.busyLabel
	}
	return ControlState{
		Input:         c.input,
		Loading:       c.loading,
		SubmitEnabled: !c.loading,
		Label:         label,
	}
}
