package libgaroon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	// Domain is the cloud domain hosting Garoon tenants
	Domain = "cybozu.com"

	// APIPath is the REST API root below the tenant host
	APIPath = "/g/api/v1"

	// AuthHeader carries the base64 "login:password" credential
	AuthHeader = "X-Cybozu-Authorization"

	// PageSize is the limit sent with every list request
	PageSize = 100

	defaultTimeout   = 30 * time.Second
	defaultRetryWait = 500 * time.Millisecond
	maxRedirects     = 10
)

// ClientOptions configures a Client.
type ClientOptions struct {
	Subdomain string
	BasicAuth string

	// BaseURL overrides the URL derived from Subdomain (used by tests and on-premise installs)
	BaseURL string

	RetryCount int
	RetryWait  time.Duration
	Timeout    time.Duration

	// RateLimit is the maximum number of requests per second. Zero disables pacing.
	RateLimit float64

	Logger resty.Logger
}

// Client is a Garoon REST API client
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	baseURL string
}

// BaseURL returns the API root for a tenant subdomain.
func BaseURL(subdomain string) (string, error) {
	sub := strings.TrimSpace(subdomain)
	sub = strings.TrimSuffix(sub, ".")
	sub = strings.TrimSuffix(sub, "."+Domain)
	if sub == "" {
		return "", fmt.Errorf("subdomain is required")
	}
	if strings.ContainsAny(sub, "/:?#") {
		return "", fmt.Errorf("invalid subdomain %q", subdomain)
	}

	return "https://" + sub + "." + Domain + APIPath, nil
}

// NewClient creates a new Garoon client
func NewClient(opts ClientOptions) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		var err error
		baseURL, err = BaseURL(opts.Subdomain)
		if err != nil {
			return nil, err
		}
	}

	if opts.BasicAuth == "" {
		return nil, fmt.Errorf("basic auth credential is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryWait := opts.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}

	r := resty.New()
	r.SetBaseURL(baseURL)
	r.SetHeader(AuthHeader, opts.BasicAuth)
	r.SetHeader("Accept", "application/json")
	r.SetTimeout(timeout)
	r.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	// Retries are owned by the transport; callers only ever see the final outcome.
	r.SetRetryCount(opts.RetryCount)
	r.SetRetryWaitTime(retryWait)
	r.SetRetryMaxWaitTime(8 * retryWait)
	r.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		code := resp.StatusCode()
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	})

	if opts.Logger != nil {
		logger := opts.Logger
		r.SetLogger(logger)
		r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			logger.Debugf("%s %s -> %d (%s)", resp.Request.Method, resp.Request.URL, resp.StatusCode(), resp.Time())
			return nil
		})
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		http:    r,
		limiter: limiter,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Host returns the host name of the API root, e.g. example.cybozu.com
func (c *Client) Host() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Get performs a GET request against the API and returns the raw body.
// Any failure is reported as a *TransportError.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: c.baseURL + path, Err: err}
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &TransportError{
			Method:     http.MethodGet,
			URL:        c.baseURL + path,
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}

	return resp.Body(), nil
}
