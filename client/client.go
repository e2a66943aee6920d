// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/livevote/models"
)

// DefaultTimeout bounds every request except the snapshot stream
const DefaultTimeout = 30 * time.Second

var ErrNotSignedIn = errors.New("not signed in")

// APIError is a non-2xx response from the data service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a livevote data service. It holds the current session
// and is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client

	mu       sync.Mutex
	session  *models.Session
	watchers map[int]chan *models.Session
	nextID   int
}

type ClientOption func(*Client)

// WithHTTPClient replaces the client used for both requests and streams
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
		c.streamClient = hc
	}
}

// WithSession starts the client signed in
func WithSession(s *models.Session) ClientOption {
	return func(c *Client) {
		c.session = s
	}
}

// New creates a client for the data service at baseURL
func New(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		// Streams stay open indefinitely; they end with their context
		streamClient: &http.Client{},
		watchers:     make(map[int]chan *models.Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Options reads the collection once
func (c *Client) Options(ctx context.Context) ([]models.Option, error) {
	var snap models.Snapshot
	if err := c.do(ctx, "GET", "/options", "", nil, &snap); err != nil {
		return nil, err
	}
	return snap.Options, nil
}

// Increment asks the data service to add delta to a counter field of one
// option. The addition is atomic on the service side.
func (c *Client) Increment(ctx context.Context, optionID, field string, delta int64) (models.Option, error) {
	sess := c.CurrentSession()
	if sess == nil {
		return models.Option{}, ErrNotSignedIn
	}

	var opt models.Option
	path := "/options/" + url.PathEscape(optionID) + "/increment"
	body := models.IncrementRequest{Field: field, Delta: delta}
	if err := c.do(ctx, "POST", path, sess.Token, body, &opt); err != nil {
		return models.Option{}, err
	}
	return opt, nil
}

// do performs a JSON request and decodes a 2xx response into target
func (c *Client) do(ctx context.Context, method, path, token string, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	return parseResponse(resp, target)
}

// parseResponse parses the response body into the target struct
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp models.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
