package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ContactPath is the ingestion endpoint relative to the site base URL.
const ContactPath = "/api/contact"

const maxErrorBody = 4 << 10

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("contact endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Submitter delivers the form fields to the backend.
type Submitter interface {
	Send(ctx context.Context, f Fields) error
}

// Client posts contact submissions to a site backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client for the site at baseURL.
// A nil httpClient gets a client with a 15s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + ContactPath,
		httpClient: httpClient,
	}
}

// Send issues exactly one POST with f as the JSON body. It does not retry.
func (c *Client) Send(ctx context.Context, f Fields) error {
	body, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
