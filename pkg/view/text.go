package view

import (
	"fmt"
	"io"
	"sync"
)

// TextRegion is a Region that writes each replacement to a terminal or
// other stream. The previous content is not erased; a stream cannot be.
type TextRegion struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

// NewTextRegion creates a region writing to w.
func NewTextRegion(w io.Writer) *TextRegion {
	return &TextRegion{w: w}
}

// Replace writes fragment followed by a newline.
func (r *TextRegion) Replace(fragment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = fragment
	if fragment == "" {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, fragment); err != nil {
		return fmt.Errorf("failed to write region: %w", err)
	}
	return nil
}

// Last returns the most recently written content.
func (r *TextRegion) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
