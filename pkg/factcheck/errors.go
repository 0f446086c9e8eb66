package factcheck

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the submitted text is empty after trimming.
// No request is made.
var ErrEmptyInput = errors.New("please enter text to analyze")

// HTTPError reports a non-success status from the fact-check endpoint.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.Status)
}

// APIError reports an error field in an otherwise successful response.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a local validation failure rather
// than a transport or API failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}
