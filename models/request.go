package models

import "fmt"

// Request body field names used by the two deployments.
const (
	FieldAnswer = "answer" // popup endpoint
	FieldText   = "text"   // page endpoint
)

// Deployment names.
const (
	DeploymentPopup = "popup"
	DeploymentPage  = "page"
)

// SelectionPayload is the one-shot hand-off written when a selection is captured.
type SelectionPayload struct {
	SelectedText string `json:"selectedText" form:"selectedText"`
}

// ErrorResponse is the body returned by the API when a request fails.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRequestBody builds the JSON body for a fact-check request.
// Only the configured field is set.
func NewRequestBody(field, text string) (map[string]string, error) {
	if err := ValidateField(field); err != nil {
		return nil, err
	}
	return map[string]string{field: text}, nil
}

// ValidateField checks that field is one of the known request field names.
func ValidateField(field string) error {
	switch field {
	case FieldAnswer, FieldText:
		return nil
	default:
		return fmt.Errorf("unknown request field %q (want %q or %q)", field, FieldAnswer, FieldText)
	}
}
