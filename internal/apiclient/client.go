// Package apiclient talks to a running wordbook server.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is where `wordbook serve` listens with the default config.
const DefaultBaseURL = "http://localhost:5000"

// Result mirrors the server's {success, message} envelope.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client calls the editor's JSON endpoints.
type Client struct {
	client *resty.Client
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{client: client}
}

// SaveOnExit asks the server to export its dictionary to the spreadsheet.
func (c *Client) SaveOnExit(ctx context.Context) (Result, error) {
	var result Result
	res, err := c.client.R().
		SetContext(ctx).
		Post("/save_on_exit")
	if err != nil {
		return result, fmt.Errorf("client.R.Post > %w", err)
	}

	// Error responses carry the same envelope, so decode before checking the status.
	if err := json.Unmarshal(res.Body(), &result); err != nil {
		return result, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if res.StatusCode() != http.StatusOK || !result.Success {
		return result, fmt.Errorf("status code: %d, message: %s", res.StatusCode(), result.Message)
	}
	return result, nil
}
