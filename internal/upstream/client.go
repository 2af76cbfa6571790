// Package upstream fetches league data from the upstream API.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"report-service/internal/logging"
	"report-service/internal/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	// ForwardHeader carries the caller's forwarded credential to the upstream API.
	ForwardHeader = "Authorization"
	// RequestIDHeader propagates the inbound request ID.
	RequestIDHeader = "X-Request-ID"
)

// Client performs single-attempt GETs against the upstream API.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[any]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithBreaker enables a circuit breaker that opens after failures consecutive
// transport errors or 5xx responses and stays open for cooldown.
// failures == 0 leaves the breaker disabled.
func WithBreaker(failures uint32, cooldown time.Duration) Option {
	return func(c *Client) {
		if failures == 0 {
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        "upstream",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: isSuccessful,
		})
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch GETs path (relative to the base URL) with query appended and returns
// the decoded JSON body. Any failure is returned as a *Failure.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values, credential string) (any, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	if c.breaker == nil {
		return c.get(ctx, target, credential)
	}
	v, err := c.breaker.Execute(func() (any, error) {
		return c.get(ctx, target, credential)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &Failure{URL: target, Err: err}
	}
	return v, err
}

// BreakerState reports the breaker state, or "disabled".
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

func (c *Client) get(ctx context.Context, target, credential string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Failure{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set(ForwardHeader, credential)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream("transport", time.Since(start))
		return nil, &Failure{URL: target, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	metrics.ObserveUpstream(metrics.StatusClass(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, &Failure{URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Failure{
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       prefix(string(body), BodyPrefixLimit),
		}
	}

	v, err := decode(body)
	if err != nil {
		return nil, &Failure{URL: target, Err: fmt.Errorf("%w: %v", ErrInvalidJSON, err)}
	}
	return v, nil
}

// decode parses body keeping numbers as json.Number. An empty body is nil.
func decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// isSuccessful keeps 4xx answers and callers that went away from tripping
// the breaker.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var f *Failure
	if errors.As(err, &f) && f.StatusCode >= 400 && f.StatusCode < 500 {
		return true
	}
	return false
}
