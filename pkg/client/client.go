// Package client is a small HTTP client for the buddyfinder API.
package client

import (
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

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/pkg/response"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer decoded from the error envelope.
// It unwraps to the matching service sentinel so callers can use errors.Is across the wire.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Code == response.CodeValidation && e.detail() == response.DetailProfileIncomplete:
		return service.ErrIncompleteProfile
	case e.Code == response.CodeValidation:
		return service.ErrInvalidInput
	case e.Code == response.CodeUnauthorized:
		return service.ErrUnauthorized
	default:
		return nil
	}
}

func (e *APIError) detail() string {
	var s string
	_ = json.Unmarshal(e.Details, &s)
	return s
}

type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (15s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for the server at baseURL, sending token as a bearer credential.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}
	c := &Client{baseURL: u, token: token, http: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchMatches requests one window of matches. Failures are returned once; nothing is retried.
func (c *Client) FetchMatches(ctx context.Context, w model.Window) (model.MatchesPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(w.Limit))
	q.Set("offset", strconv.Itoa(w.Offset))

	var page model.MatchesPage
	if err := c.get(ctx, "/api/v1/matches", q, &page); err != nil {
		return model.MatchesPage{}, err
	}
	if page.Data == nil {
		page.Data = []model.MatchedUser{}
	}
	return page, nil
}

// Sports lists the sports catalogue.
func (c *Client) Sports(ctx context.Context) ([]model.Sport, error) {
	var out []model.Sport
	if err := c.get(ctx, "/api/v1/sports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var env struct {
		Error struct {
			Code    string          `json:"code"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Error.Code == "" {
		return &APIError{Status: status, Code: response.CodeInternal, Message: http.StatusText(status)}
	}
	return &APIError{Status: status, Code: env.Error.Code, Message: env.Error.Message, Details: env.Error.Details}
}

// IsIncompleteProfile reports whether err signals a profile without location or range.
func IsIncompleteProfile(err error) bool { return errors.Is(err, service.ErrIncompleteProfile) }
