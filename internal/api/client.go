// Package api implements the client for the Shopwave platform API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// httpClient is a shared HTTP client with keep-alive pooling.
var httpClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	},
	Timeout: 30 * time.Second,
}

// Session holds the authenticated context for API calls.
type Session struct {
	// Shop is the shop domain the session is scoped to.
	Shop string
	// Token is the platform access token.
	Token string
}

// Client talks to the platform API for a single shop session.
type Client struct {
	baseURL string
	session Session
	http    *http.Client

	// pollInterval controls how often WaitForJob polls. Tests shorten it.
	pollInterval time.Duration
}

// NewClient returns a Client for the given endpoint and session.
func NewClient(baseURL string, session Session) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		session:      session,
		http:         httpClient,
		pollInterval: 500 * time.Millisecond,
	}
}

// Shop returns the shop domain the client is scoped to.
func (c *Client) Shop() string {
	return c.session.Shop
}

// APIError is a non-2xx response from the platform API.
type APIError struct {
	Status    int    // HTTP status code
	RequestID string // the X-Request-Id sent with the request
	Message   string // error message from the response body, if any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform API error (status %d, request %s): %s", e.Status, e.RequestID, e.Message)
	}
	return fmt.Sprintf("platform API error (status %d, request %s)", e.Status, e.RequestID)
}

// errorBody is the JSON shape of API error responses.
type errorBody struct {
	Error string `json:"error"`
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
// Every request carries a fresh X-Request-Id for support correlation.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Authorization", "Bearer "+c.session.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to platform API failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// stream sends a GET request and returns the raw response body.
// The caller must close it.
func (c *Client) stream(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to platform API failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, RequestID: requestID}
	}
	return resp.Body, nil
}

// Ping validates the session by fetching the shop resource.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/shops/"+c.session.Shop, nil, nil)
}
