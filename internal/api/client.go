package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runadvisor/internal/metrics"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Option configures an API client
type Option func(*requester)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(r *requester) {
		r.client = c
	}
}

// WithBaseURL points the client at a different endpoint (used by tests)
func WithBaseURL(url string) Option {
	return func(r *requester) {
		r.baseURL = url
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(r *requester) {
		if d > 0 {
			r.client.Timeout = d
		}
	}
}

// WithRateLimit caps outbound requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(r *requester) {
		if rps <= 0 {
			r.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// requester performs a single rate limited GET and decodes the JSON body.
// There are no retries: a non-200 status is returned as an error.
type requester struct {
	provider string
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
}

func newRequester(provider, baseURL string, opts []Option) *requester {
	r := &requester{
		provider: provider,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *requester) getJSON(ctx context.Context, url string, v any) (err error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	start := time.Now()
	defer func() {
		metrics.RecordAPIRequest(r.provider, time.Since(start), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", r.provider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", r.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Provider: r.provider, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", r.provider, err)
	}

	return nil
}

// StatusError is returned when a provider answers with a non-200 status
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}
