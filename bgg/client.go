package bgg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the base URL for the BGG XML API.
	BaseURL = "https://boardgamegeek.com/xmlapi2"

	// MarketURL is the geekmarket products endpoint (JSON).
	MarketURL = "https://api.geekdo.com/api/market/products"

	// LoginURL is the credentials login endpoint.
	LoginURL = "https://boardgamegeek.com/login/api/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultBatchSize is how many game ids go into one thing request.
	DefaultBatchSize = 20

	// DefaultWorkers bounds concurrent per-item fetches.
	DefaultWorkers = 8
)

// Config holds the configuration for the BGG API client. The zero value is
// usable: unauthenticated, default timeouts and retry budgets.
type Config struct {
	Auth       AuthContext
	Timeout    time.Duration
	Retry      RetryPolicy // per-request policy for interactive calls
	BatchRetry RetryPolicy // longer policy for batch operations
	BatchSize  int
	Workers    int
	Logger     *log.Logger

	// Endpoint overrides, used by tests.
	BaseURL   string
	MarketURL string
	LoginURL  string
}

// Client is the BGG API client. The session (cookie jar, auth header) is
// shared read-mostly state: only login during construction mutates it, so
// parallel fetch workers may use one client freely.
type Client struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *log.Logger
	auth          AuthContext
	authenticated bool
	retry         RetryPolicy
	batchRetry    RetryPolicy
	batchSize     int
	workers       int
	baseURL       string
	marketURL     string
	loginURL      string
}

// NewClient creates a new BGG API client. Authentication failures never
// abort construction; they only disable private-field access and are logged
// as warnings.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}
	batchRetry := cfg.BatchRetry
	if batchRetry.MaxAttempts == 0 {
		batchRetry = BatchRetryPolicy()
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "bgg"})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	marketURL := cfg.MarketURL
	if marketURL == "" {
		marketURL = MarketURL
	}
	loginURL := cfg.LoginURL
	if loginURL == "" {
		loginURL = LoginURL
	}

	jar, _ := cookiejar.New(nil)

	c := &Client{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		logger:     logger,
		auth:       cfg.Auth,
		retry:      retry,
		batchRetry: batchRetry,
		batchSize:  batchSize,
		workers:    workers,
		baseURL:    baseURL,
		marketURL:  marketURL,
		loginURL:   loginURL,
	}

	if !c.auth.HasToken() {
		logger.Warn("no API token configured; proceeding without authentication")
	}

	// Login always completes, successfully or not, before any data fetch.
	if c.auth.HasCredentials() {
		if err := c.login(context.Background()); err != nil {
			logger.Warn("login failed; private info will not be available", "err", err)
		}
	} else {
		logger.Info("username or password not set; private info will not be available")
	}

	return c
}

// Authenticated reports whether the session holds login cookies that enable
// private collection fields.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// do issues one HTTP GET with the auth header attached.
func (c *Client) do(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.auth.HasToken() {
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	}
	return c.httpClient.Do(req)
}

// fetchXML performs a retrying GET against an XML API endpoint and returns a
// body that is well-formed and free of service-level errors.
//
// Transient failures (network errors, non-2xx statuses, malformed bodies)
// are retried up to the policy budget. A 202 means the result is still being
// generated and is always retried. A well-formed error document is semantic:
// it surfaces immediately as NotFoundError with no further attempts.
func (c *Client) fetchXML(ctx context.Context, endpoint string, params url.Values, policy RetryPolicy) ([]byte, error) {
	attempts := policy.attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := policy.wait(ctx, attempt-1); err != nil {
				return nil, newNetworkError("request cancelled", 0, err)
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newNetworkError("request cancelled", 0, err)
		}

		resp, err := c.do(ctx, c.baseURL+endpoint, params)
		if err != nil {
			lastErr = newNetworkError("request failed", 0, err)
			c.logger.Debug("request failed", "endpoint", endpoint, "attempt", attempt, "err", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = newNetworkError("failed to read response body", resp.StatusCode, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusAccepted:
			// Result is being generated asynchronously.
			lastErr = newNetworkError("result not ready", resp.StatusCode, nil)
			c.logger.Debug("result not ready, retrying", "endpoint", endpoint, "attempt", attempt)
			continue

		case resp.StatusCode == http.StatusUnauthorized:
			return nil, newAuthError("invalid or expired token", nil)

		case resp.StatusCode == http.StatusTooManyRequests:
			retryAfter := 5 * time.Second
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if d, err := time.ParseDuration(ra + "s"); err == nil {
					retryAfter = d
				}
			}
			lastErr = newRateLimitError("rate limit exceeded", retryAfter)
			c.logger.Debug("rate limited", "endpoint", endpoint, "retry_after", retryAfter)
			continue

		case resp.StatusCode < 200 || resp.StatusCode > 299:
			lastErr = newNetworkError(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), resp.StatusCode, nil)
			continue
		}

		if err := probeDocument(body); err != nil {
			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				return nil, err
			}
			lastErr = err
			c.logger.Debug("malformed response, retrying", "endpoint", endpoint, "attempt", attempt)
			continue
		}

		return body, nil
	}

	return nil, newConnExhaustedError(attempts, lastErr)
}

// fetchJSON performs a retrying GET against a JSON endpoint and unmarshals
// the body into out. A body that is not valid JSON counts as a transient
// failure, same as a malformed XML document.
func (c *Client) fetchJSON(ctx context.Context, rawURL string, params url.Values, policy RetryPolicy, out any) error {
	attempts := policy.attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := policy.wait(ctx, attempt-1); err != nil {
				return newNetworkError("request cancelled", 0, err)
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return newNetworkError("request cancelled", 0, err)
		}

		resp, err := c.do(ctx, rawURL, params)
		if err != nil {
			lastErr = newNetworkError("request failed", 0, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = newNetworkError("failed to read response body", resp.StatusCode, err)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			lastErr = newNetworkError(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), resp.StatusCode, nil)
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			lastErr = newParseError("response is not valid JSON", err)
			continue
		}

		return nil
	}

	return newConnExhaustedError(attempts, lastErr)
}
