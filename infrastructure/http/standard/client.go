// ABOUTME: HTTP client used to retrieve feed bodies with optional retry, rate limit and SOCKS5 proxy
// ABOUTME: Retries use exponential backoff and only apply to transport errors and 5xx responses

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"

	"linkfeed-aggregator/core/interfaces"
)

const userAgent = "LinkfeedAggregator/1.0"

// Options configures the client
type Options struct {
	// Timeout bounds each attempt
	Timeout time.Duration

	// MaxRetries is the number of extra attempts after the first one
	MaxRetries int

	// RateLimit is the maximum requests per second across all feeds; 0 disables limiting
	RateLimit float64

	// ProxyAddress routes requests through a SOCKS5 proxy at host:port when set
	ProxyAddress string
}

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client     *http.Client
	maxRetries int
	limiter    *rate.Limiter
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout and no retries
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewStandardHTTPClientWithOptions creates a client from Options
func NewStandardHTTPClientWithOptions(opts Options) (*StandardHTTPClient, error) {
	c := NewStandardHTTPClient(opts.Timeout)

	if opts.MaxRetries > 0 {
		c.maxRetries = opts.MaxRetries
	}

	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.ProxyAddress != "" {
		dialer, err := proxy.SOCKS5("tcp", opts.ProxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		contextDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("SOCKS5 dialer for %s does not support contexts", opts.ProxyAddress)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nil
		transport.DialContext = contextDialer.DialContext
		c.client.Transport = transport
	}

	return c, nil
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)

	attempts := 1 + c.maxRetries
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms, ...
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Don't retry on success or 4xx errors, and hand back the last 5xx as is
		if resp.StatusCode < http.StatusInternalServerError || attempt == attempts-1 {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       resp.Body,
				headers:    resp.Header,
			}, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, lastErr
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
