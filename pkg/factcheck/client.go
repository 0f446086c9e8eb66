// Package factcheck is the HTTP client of the external fact-check API.
package factcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/sachai/models"
)

// Client posts text to a fact-check endpoint and decodes the report.
type Client struct {
	client   *http.Client
	endpoint string
	field    string
}

// envelope decodes a report and the optional error field in one pass.
type envelope struct {
	models.Report
	Error string `json:"error"`
}

// NewClient creates a client for endpoint that sends text in field.
// A zero timeout leaves the transport default in place.
func NewClient(endpoint, field string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, models.ErrMissingEndpoint
	}
	if err := models.ValidateField(field); err != nil {
		return nil, err
	}
	return &Client{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		field:    field,
	}, nil
}

// NewClientFromConfig creates the client of the given deployment.
func NewClientFromConfig(cfg models.Config, deployment string) (*Client, error) {
	ep := cfg.Endpoint(deployment)
	return NewClient(ep.Endpoint, ep.Field, cfg.Client.Timeout)
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Field returns the request body field name.
func (c *Client) Field() string {
	return c.field
}

// Submit sends text for fact-checking. Exactly one POST is made for
// non-empty input and none for empty input. The report is returned as
// decoded; checking it for claims is left to the renderer.
func (c *Client) Submit(ctx context.Context, text string) (*models.Report, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	body, err := models.NewRequestBody(c.field, text)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	if env.Error != "" {
		return nil, &APIError{Message: env.Error}
	}

	report := env.Report
	return &report, nil
}
