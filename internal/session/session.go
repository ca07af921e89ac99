// Package session provides the authenticated HTTP session shared by all
// service gateways.
//
// Authentication is modelled as an explicit capability: a TokenProvider is
// injected at construction and consulted on every request, so tokens can be
// refreshed transparently during long polling windows. There is no implicit
// global session state; callers construct a Session and pass it to gateway
// factories, and may Invalidate() it to force re-authentication.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// TokenProvider supplies an auth token valid at the time of the call.
// Implementations are responsible for refreshing expired tokens.
type TokenProvider interface {
	CurrentToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider returning a fixed token. It never refreshes.
type StaticToken string

// CurrentToken implements TokenProvider.
func (t StaticToken) CurrentToken(context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("no auth token configured")
	}
	return string(t), nil
}

// refreshThreshold is how long before expiry a cached token is refreshed, so
// in-flight long waits never present a token about to lapse.
const refreshThreshold = 60 * time.Second

// CachingToken wraps a refresh function and caches the issued token until
// close to its expiry.
type CachingToken struct {
	Refresh func(ctx context.Context) (token string, expiresAt time.Time, err error)

	token     string
	expiresAt time.Time
}

// CurrentToken implements TokenProvider. It refreshes when no token is held
// or the held token is within the refresh threshold of expiring.
func (c *CachingToken) CurrentToken(ctx context.Context) (string, error) {
	if c.token != "" && time.Until(c.expiresAt) > refreshThreshold {
		return c.token, nil
	}

	token, expiresAt, err := c.Refresh(ctx)
	if err != nil {
		// A still-valid cached token is better than failing the request.
		if c.token != "" && time.Now().Before(c.expiresAt) {
			return c.token, nil
		}
		return "", fmt.Errorf("failed to refresh auth token: %w", err)
	}

	c.token = token
	c.expiresAt = expiresAt
	return c.token, nil
}

// Invalidate drops the cached token so the next call re-authenticates.
func (c *CachingToken) Invalidate() {
	c.token = ""
	c.expiresAt = time.Time{}
}

// Session is an authenticated handle to one testbed site.
type Session struct {
	// Endpoints maps service names (reservation, compute, network, image,
	// container, share) to base URLs.
	Endpoints map[string]string

	// ProjectID scopes requests; surfaced to gateways that filter by owner.
	ProjectID string

	// Region is the site region name.
	Region string

	tokens TokenProvider
	client *http.Client
	log    logr.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Session) {
		s.client = hc
	}
}

// WithLogger sets a structured logger for request tracing.
func WithLogger(l logr.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New creates a Session using the given token provider and per-service
// endpoints.
func New(tokens TokenProvider, endpoints map[string]string, opts ...Option) *Session {
	s := &Session{
		Endpoints: endpoints,
		tokens:    tokens,
		client:    &http.Client{Timeout: 60 * time.Second},
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invalidate forces re-authentication on the next request, if the token
// provider supports it.
func (s *Session) Invalidate() {
	if inv, ok := s.tokens.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
}

// Endpoint returns the base URL for a named service.
func (s *Session) Endpoint(service string) (string, error) {
	ep, ok := s.Endpoints[service]
	if !ok || ep == "" {
		return "", fmt.Errorf("no endpoint configured for service %q", service)
	}
	return strings.TrimRight(ep, "/"), nil
}

// APIError is a typed error carrying the remote status code, so callers can
// give 404 its special not-found handling.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an APIError with status 409.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// Do performs an authenticated JSON request against a named service. body
// (when non-nil) is JSON-encoded; out (when non-nil) receives the decoded
// response body. Non-2xx responses produce an *APIError.
func (s *Session) Do(ctx context.Context, service, method, path string, body, out any) error {
	base, err := s.Endpoint(service)
	if err != nil {
		return err
	}
	url := base + path

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	token, err := s.tokens.CurrentToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("X-Auth-Token", token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.log.V(1).Info("api request", "method", method, "url", url)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        url,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
	}
	return nil
}
