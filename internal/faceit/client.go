// Package faceit provides a minimal client for the FACEIT Data API v4.
//
// Responses are returned as raw JSON so the HTTP layer can pass upstream
// documents through untouched; the helpers in parse.go pull out the few
// fields the service needs.
package faceit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the root endpoint for the FACEIT Data API v4.
const DefaultBaseURL = "https://open.faceit.com/data/v4"

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 15 * time.Second

// ErrNoAPIKey is returned by callers that refuse to hit the API without a key.
var ErrNoAPIKey = errors.New("FACEIT_API_KEY not configured")

// APIError is a non-2xx response from the FACEIT API.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.Path, e.StatusCode)
}

// StatusCode returns the upstream HTTP status carried by err, or 500 when
// err did not come from an upstream response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Client is a minimal FACEIT Data API v4 client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient returns a FACEIT API client authenticated with the given API key.
// An empty key is allowed; requests are then sent without authorization.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// get performs a GET against the FACEIT API and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Path: path, Body: snippet}
	}
	return body, nil
}

// PlayerByNickname returns the raw /players document for a nickname.
func (c *Client) PlayerByNickname(ctx context.Context, nickname string) ([]byte, error) {
	return c.get(ctx, "/players", url.Values{"nickname": {nickname}})
}

// HistoryQuery selects a page of a player's match history.
type HistoryQuery struct {
	Game   string
	Limit  int
	Offset int
}

// DefaultHistoryQuery is the page requested when the caller sets nothing.
var DefaultHistoryQuery = HistoryQuery{Game: "cs2", Limit: 20, Offset: 0}

func (q HistoryQuery) values() url.Values {
	if q.Game == "" {
		q.Game = DefaultHistoryQuery.Game
	}
	if q.Limit <= 0 {
		q.Limit = DefaultHistoryQuery.Limit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return url.Values{
		"game":   {q.Game},
		"limit":  {strconv.Itoa(q.Limit)},
		"offset": {strconv.Itoa(q.Offset)},
	}
}

// MatchHistory returns the raw /players/{id}/history document.
func (c *Client) MatchHistory(ctx context.Context, playerID string, q HistoryQuery) ([]byte, error) {
	return c.get(ctx, "/players/"+url.PathEscape(playerID)+"/history", q.values())
}

// Match returns the raw /matches/{id} document.
func (c *Client) Match(ctx context.Context, matchID string) ([]byte, error) {
	return c.get(ctx, "/matches/"+url.PathEscape(matchID), nil)
}
