package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julienstroheker/httperr/enhancer"
	"github.com/julienstroheker/httperr/internal/logging"
)

// Client is an HTTP client whose failures carry the request that caused them
type Client struct {
	httpClient *http.Client
	baseURL    string
	policies   []Policy
}

// Options contains configuration options for the HTTP client
type Options struct {
	// Timeout is the maximum time for the entire request
	Timeout time.Duration

	// BaseURL is joined with relative request URLs when the request config has none
	BaseURL string

	// Logger is used for debug logging and failure warnings (optional)
	Logger *logging.Logger

	// UserAgent is the User-Agent header value
	UserAgent string

	// Transport allows customizing the underlying HTTP transport
	Transport http.RoundTripper

	// Enhancer turns failures into enhanced errors. Nil returns raw failures.
	Enhancer *enhancer.Enhancer

	// Registerer receives the failure counter (optional)
	Registerer prometheus.Registerer

	// AdditionalPolicies allows adding custom policies
	AdditionalPolicies []Policy
}

// DefaultOptions returns default options for the HTTP client
func DefaultOptions() *Options {
	return &Options{
		Timeout:   30 * time.Second,
		UserAgent: defaultUserAgent,
		Enhancer:  enhancer.Configure(nil),
	}
}

// NewClient creates a new HTTP client with the given options
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	httpClient := &http.Client{
		Timeout: opts.Timeout,
	}

	if opts.Transport != nil {
		httpClient.Transport = opts.Transport
	}

	// Build policy chain in order:
	// 1. Enhance (outermost)
	// 2. Metrics
	// 3. Error construction
	// 4. Request ID
	// 5. User Agent
	// 6. Logging
	// 7. Custom policies
	policies := make([]Policy, 0)

	if opts.Enhancer != nil {
		policies = append(policies, NewEnhancePolicy(opts.Enhancer, opts.Logger))
	}

	if opts.Registerer != nil {
		policies = append(policies, NewMetricsPolicy(opts.Registerer))
	}

	policies = append(policies, NewErrorPolicy())

	// Request ID policy (must be before logging to see the ID in logs)
	policies = append(policies, NewRequestIDPolicy(""))

	if opts.UserAgent != "" {
		policies = append(policies, NewUserAgentPolicy(opts.UserAgent))
	}

	// Logging sees the request after every header has been set
	if opts.Logger != nil {
		policies = append(policies, NewLoggingPolicy(opts.Logger, &LoggingOptions{
			LogHeaders: true,
			LogBody:    true,
		}))
	}

	if len(opts.AdditionalPolicies) > 0 {
		policies = append(policies, opts.AdditionalPolicies...)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    opts.BaseURL,
		policies:   policies,
	}
}

type configKey struct{}

// WithRequestConfig returns a context carrying the config failures should report
func WithRequestConfig(ctx context.Context, config *enhancer.RequestConfig) context.Context {
	return context.WithValue(ctx, configKey{}, config)
}

// RequestConfigFrom returns the config stored on ctx, if any
func RequestConfigFrom(ctx context.Context) *enhancer.RequestConfig {
	config, _ := ctx.Value(configKey{}).(*enhancer.RequestConfig)
	return config
}

// NewRequest builds a request from config. The client's BaseURL is used when
// config has none and its URL is relative, and Params are appended to the query string. The config
// travels on the request context so failures report the configured URL.
func (c *Client) NewRequest(ctx context.Context, config *enhancer.RequestConfig, body io.Reader) (*http.Request, error) {
	if config == nil {
		return nil, errors.New("request config is required")
	}
	resolved := *config
	if resolved.BaseURL == "" && !isAbsoluteURL(resolved.URL) {
		resolved.BaseURL = c.baseURL
	}
	method := strings.ToUpper(resolved.Method)
	if method == "" {
		method = strings.ToUpper(resolved.Type)
	}
	if method == "" {
		method = http.MethodGet
	}
	resolved.Method = method

	target := resolved.URL
	if resolved.BaseURL != "" {
		target = enhancer.JoinURL(resolved.BaseURL, resolved.URL)
	}

	req, err := http.NewRequestWithContext(WithRequestConfig(ctx, &resolved), method, target, body)
	if err != nil {
		return nil, err
	}

	if len(resolved.Params) > 0 {
		query := req.URL.Query()
		for key, values := range resolved.Params {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		req.URL.RawQuery = query.Encode()
	}
	return req, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs()
}

// Request builds a request from config and executes it
func (c *Client) Request(ctx context.Context, config *enhancer.RequestConfig, body io.Reader) (*http.Response, error) {
	req, err := c.NewRequest(ctx, config, body)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Do executes an HTTP request through the policy chain
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	next := func(r *http.Request) (*http.Response, error) {
		return c.httpClient.Do(r)
	}

	// Apply policies in reverse order to build the chain
	for i := len(c.policies) - 1; i >= 0; i-- {
		policy := c.policies[i]
		currentNext := next
		next = func(r *http.Request) (*http.Response, error) {
			return policy.Do(r, currentNext)
		}
	}

	return next(req)
}

// Get is a convenience method for GET requests
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	return c.Request(ctx, &enhancer.RequestConfig{Method: http.MethodGet, URL: rawURL}, nil)
}

// Post is a convenience method for POST requests
func (c *Client) Post(ctx context.Context, rawURL, contentType string, body io.Reader) (*http.Response, error) {
	req, err := c.NewRequest(ctx, &enhancer.RequestConfig{Method: http.MethodPost, URL: rawURL}, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.Do(req)
}
