// Package gitlab is a small client for the parts of the GitLab REST API (v4)
// needed to resolve a user and check group and project membership.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// TokenType selects how the client authenticates against the API.
type TokenType int

const (
	// OAuth2Access sends the token as a bearer credential.
	OAuth2Access TokenType = iota
	// PrivateToken sends the token in the PRIVATE-TOKEN header.
	PrivateToken
)

// Client talks to a single GitLab instance with a single credential.
// A Client is meant to live for one stage of one login attempt and must be
// closed when that stage returns.
type Client struct {
	baseURL   *url.URL
	token     string
	tokenType TokenType
	http      *http.Client
	limiter   *rate.Limiter

	// ownsHTTP is false when the HTTP client was injected and may be
	// shared with other Clients.
	ownsHTTP bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for API calls. Close leaves
// an injected client's connections alone.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
			c.ownsHTTP = false
		}
	}
}

// WithRateLimiter throttles outgoing API calls.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewOAuthClient creates a client authenticated with a user's OAuth2 access token.
func NewOAuthClient(rootURL, accessToken string, opts ...Option) (*Client, error) {
	return newClient(rootURL, accessToken, OAuth2Access, opts...)
}

// NewPrivateTokenClient creates a client authenticated with a private or
// group access token.
func NewPrivateTokenClient(rootURL, privateToken string, opts ...Option) (*Client, error) {
	return newClient(rootURL, privateToken, PrivateToken, opts...)
}

func newClient(rootURL, token string, tokenType TokenType, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("gitlab: empty token")
	}
	u, err := url.Parse(strings.TrimSuffix(rootURL, "/") + "/api/v4/")
	if err != nil {
		return nil, fmt.Errorf("gitlab: invalid root url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gitlab: root url %q is not absolute", rootURL)
	}

	c := &Client{
		baseURL:   u,
		token:     token,
		tokenType: tokenType,
		// No client timeout: the caller's context carries the deadline.
		http: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		ownsHTTP: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API base URL, ending with "/api/v4/".
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Close releases the idle connections held by the client.
func (c *Client) Close() error {
	if c.ownsHTTP {
		c.http.CloseIdleConnections()
	}
	return nil
}

// get performs an authenticated GET on path (relative to /api/v4/) and
// decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
	}

	rel, err := url.Parse(path)
	if err != nil {
		return err
	}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	switch c.tokenType {
	case PrivateToken:
		req.Header.Set("PRIVATE-TOKEN", c.token)
	default:
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", u.Path, err)
	}
	return nil
}
