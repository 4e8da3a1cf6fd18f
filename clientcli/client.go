package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body the client reads.
	maxResponseBytes = 10 << 20
)

// Client performs operations against a kvtodo server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		config: &Config{
			Endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
			Prefix:   cfg.Prefix,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the normalized server endpoint.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// List fetches every todo item.
func (c *Client) List(ctx context.Context) (*ListResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, parseServerError(status, body)
	}

	items := []Todo{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &ListResult{Items: items}, nil
}

// Create adds a new item with the given title.
func (c *Client) Create(ctx context.Context, title string) (*WriteResult, error) {
	payload, err := json.Marshal(todoRequest{Title: title})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, c.collectionURL(), payload)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, parseServerError(status, body)
	}

	return &WriteResult{
		Title:   title,
		Message: strings.TrimSpace(string(body)),
	}, nil
}

// Update replaces the title stored under id, creating the item if needed.
func (c *Client) Update(ctx context.Context, id, title string) (*WriteResult, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	payload, err := json.Marshal(todoRequest{Title: title})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPut, c.itemURL(id), payload)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, parseServerError(status, body)
	}

	return &WriteResult{
		ID:      id,
		Title:   title,
		Message: strings.TrimSpace(string(body)),
	}, nil
}

// Delete removes one or more items from the server.
// Returns a result for each id, with Err set for failures.
func (c *Client) Delete(ctx context.Context, opts DeleteOptions) ([]DeleteResult, error) {
	if len(opts.IDs) == 0 {
		return nil, ErrNoIDs
	}

	results := make([]DeleteResult, 0, len(opts.IDs))

	for _, id := range opts.IDs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, c.deleteSingle(ctx, id))
	}

	return results, nil
}

func (c *Client) deleteSingle(ctx context.Context, id string) DeleteResult {
	if id == "" {
		return DeleteResult{ID: id, Err: ErrEmptyID}
	}

	status, body, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return DeleteResult{ID: id, Err: err}
	}

	if status != http.StatusOK && status != http.StatusNoContent {
		return DeleteResult{ID: id, Err: parseServerError(status, body)}
	}

	return DeleteResult{ID: id, Deleted: true}
}

// HasDeleteErrors returns true if any delete operation failed.
func HasDeleteErrors(results []DeleteResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Ping checks that the server answers HTTP at all. Any status code counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	return err
}

func (c *Client) collectionURL() string {
	if c.config.Prefix == "" {
		return c.config.Endpoint + "/todos"
	}
	return c.config.Endpoint + "/" + url.PathEscape(c.config.Prefix) + "/todos"
}

func (c *Client) itemURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// do sends a request and returns the status code and body.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// parseServerError extracts the error code and message from a server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var se serverError
	if len(body) > 0 && json.Unmarshal(body, &se) == nil {
		apiErr.Code = se.Error
		apiErr.Message = se.Message
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Message
	case e.Body != "":
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
	default:
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + http.StatusText(e.StatusCode)
	}
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the route does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrBadRequest is returned when the server rejects the body (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrServer is returned when the server fails internally (500).
	ErrServer = &APIError{StatusCode: http.StatusInternalServerError}
)
