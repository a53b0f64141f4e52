package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "DiscographySync"

// DefaultTimeout bounds a single request, body included.
const DefaultTimeout = 60 * time.Second

// StatusError is returned when the server answers with a non-2xx status.
//
// Status carries the full status line text, e.g. "404 Not Found".
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Client wraps HTTP operations for fetching the published spreadsheet.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Typed errors for unsuccessful responses
//
// Example usage:
//
//	client := NewClient()
//
//	csvText, err := client.GetString(ctx, "https://docs.google.com/spreadsheets/d/ID/export?format=csv&gid=0")
//	var statusErr *StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println(statusErr.Status)
//	}
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with the default configuration.
//
// The client is configured with:
//   - 60 second timeout
//   - "DiscographySync" User-Agent header
func NewClient() *Client {
	return NewClientWith(&http.Client{Timeout: DefaultTimeout}, DefaultUserAgent)
}

// NewClientWith creates a Client around an existing *http.Client.
//
// A nil httpClient gets the default timeout; an empty userAgent falls back
// to DefaultUserAgent.
func NewClientWith(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx (a *StatusError)
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://example.com/sheet.csv")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	return DrainStream(ctx, resp.Body, nil)
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like CSV.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
