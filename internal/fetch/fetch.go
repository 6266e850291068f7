// Package fetch retrieves job-posting pages on a best-effort basis. Job
// boards rarely allow direct cross-origin reads, so fetches go through
// public CORS-proxy mirrors, with retry on transient failures, an in-memory
// TTL cache, and an optional headless-browser fallback for JS-rendered
// boards.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; BeCandidature/1.0)"

// MaxBodyBytes caps how much of a page is read; the metadata we mine lives
// in <head>, so a truncated body is still usable.
const MaxBodyBytes = 2 << 20

// Result holds the content of a fetched page.
type Result struct {
	URL        string
	HTML       string
	StatusCode int
}

// HTTPError represents a non-200 response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP status %d for %s", e.StatusCode, e.URL)
}

// Options configures fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves HTML content from a URL directly, retrying once on
// transient failures.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: %w", urlStr, err)
	}

	client := &http.Client{Timeout: opts.Timeout}

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
			if reqErr != nil {
				return nil, reqErr
			}
			req.Header.Set("User-Agent", opts.UserAgent)

			resp, doErr := client.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{URL: urlStr, StatusCode: resp.StatusCode}
			}
			return io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryableError),
	)
	if err != nil {
		return nil, err
	}

	return &Result{URL: urlStr, HTML: string(body), StatusCode: http.StatusOK}, nil
}

// isRetryableError returns true for transient errors worth a second attempt.
func isRetryableError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}
