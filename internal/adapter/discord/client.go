// Package discord implements the platform REST boundary: invite
// verification, message text resolution, and webhook flag delivery.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Client is a thin authenticated REST client shared by the invite verifier
// and the message resolver.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client against the public platform API.
func NewClient(token string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, token, timeout, logger)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "discord"),
	}
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("discord: create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bot "+c.token)
	}
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. 4xx responses are never retried.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "discord retry", slog.String("path", req.URL.Path), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return c.httpClient.Do(req)
}
