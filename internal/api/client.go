// Package api is the HTTP client for the remote recipe collection.
//
// The client performs exactly one request per call and never retries.
// Non-2xx responses become an [HTTPError] and their bodies are never
// decoded as data.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

// DefaultBaseURL is where the recipe server listens in development.
const DefaultBaseURL = "http://localhost:8000"

// Compile-time interface check.
var _ domain.RecipeAPI = (*Client)(nil)

// Doer is the transport capability. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithDoer replaces the transport.
func WithDoer(d Doer) ClientOption {
	return func(c *Client) { c.http = d }
}

// WithHTTPTimeout sets the timeout of the default transport. It has no
// effect once WithDoer installed a custom one.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if hc, ok := c.http.(*http.Client); ok {
			hc.Timeout = d
		}
	}
}

// Client talks to the recipe collection endpoints.
type Client struct {
	baseURL string
	http    Doer
	log     *logger.Logger
}

// NewClient creates a recipe API client rooted at baseURL
// (e.g. "http://localhost:8000"). An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// CollectionURL is the list/create endpoint, with the filter as the q
// parameter when non-nil.
func (c *Client) CollectionURL(filter *string) string {
	u := c.baseURL + "/recipes/"
	if filter != nil {
		u += "?q=" + url.QueryEscape(*filter)
	}
	return u
}

// RecordURL is the per-record endpoint.
func (c *Client) RecordURL(id domain.RecordID) string {
	return c.baseURL + "/recipes/" + url.PathEscape(id.String()) + "/"
}

// List fetches the collection, filtered when filter is non-nil.
func (c *Client) List(ctx context.Context, filter *string) ([]domain.RecipeSummary, error) {
	body, err := c.do(ctx, http.MethodGet, c.CollectionURL(filter), nil)
	if err != nil {
		return nil, err
	}

	var out []domain.RecipeSummary
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: decode recipe list: %w", err)
	}
	return out, nil
}

// Get fetches one recipe. A 2xx response with no body, or a JSON null,
// yields domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, id domain.RecordID) (*domain.RecipeSummary, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("api: get %q: %w", id, domain.ErrInvalidID)
	}
	body, err := c.do(ctx, http.MethodGet, c.RecordURL(id), nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, domain.ErrNotFound
	}

	var r domain.RecipeSummary
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("api: decode recipe %s: %w", id, err)
	}
	return &r, nil
}

// Create posts a new recipe. The draft's id is ignored.
func (c *Client) Create(ctx context.Context, edit domain.RecipeEdit) error {
	edit.ID = ""
	_, err := c.send(ctx, http.MethodPost, c.CollectionURL(nil), wire.ToPayload(edit))
	return err
}

// Update replaces an existing recipe.
func (c *Client) Update(ctx context.Context, edit domain.RecipeEdit) error {
	if edit.IsNew() {
		return fmt.Errorf("api: update: %w", domain.ErrInvalidID)
	}
	_, err := c.send(ctx, http.MethodPut, c.RecordURL(edit.ID), wire.ToPayload(edit))
	return err
}

// Delete removes a recipe.
func (c *Client) Delete(ctx context.Context, id domain.RecordID) error {
	if id == "" {
		return fmt.Errorf("api: delete: %w", domain.ErrInvalidID)
	}
	_, err := c.do(ctx, http.MethodDelete, c.RecordURL(id), nil)
	return err
}

func (c *Client) send(ctx context.Context, method, target string, payload wire.Payload) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: marshal payload: %w", err)
	}
	return c.do(ctx, method, target, jsonData)
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.NewString()
	c.log.Debug("api[%s]: %s %s (%d bytes)", reqID, method, target, len(body))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api[%s]: %s %s failed: %v", reqID, method, target, err)
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("api[%s]: %s in %s", reqID, resp.Status, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not data.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, newHTTPError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	return respBody, nil
}
