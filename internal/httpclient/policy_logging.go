package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/julienstroheker/httperr/adapter"
	"github.com/julienstroheker/httperr/internal/logging"
)

// maxLoggedBody caps how much of a body is copied into a log entry
const maxLoggedBody = 64 << 10

// defaultHeaderFilters are always redacted, on top of LoggingOptions.HeaderFilters
var defaultHeaderFilters = []string{"Authorization", "Cookie", "Set-Cookie", "Proxy-Authorization"}

// LoggingPolicy logs requests and responses at debug level
type LoggingPolicy struct {
	logger        *logging.Logger
	logHeaders    bool
	logBody       bool
	redactBody    bool
	headerFilters []string
}

// LoggingOptions contains configuration for LoggingPolicy
type LoggingOptions struct {
	// LogHeaders enables logging of all request/response headers
	LogHeaders bool

	// LogBody enables logging of request/response body
	LogBody bool

	// RedactBody redacts the body content (shows only size)
	RedactBody bool

	// HeaderFilters lists extra header names whose values are redacted
	HeaderFilters []string
}

// NewLoggingPolicy creates a new LoggingPolicy
func NewLoggingPolicy(logger *logging.Logger, opts *LoggingOptions) *LoggingPolicy {
	if opts == nil {
		opts = &LoggingOptions{}
	}

	return &LoggingPolicy{
		logger:        logger,
		logHeaders:    opts.LogHeaders,
		logBody:       opts.LogBody,
		redactBody:    opts.RedactBody,
		headerFilters: append(append([]string(nil), defaultHeaderFilters...), opts.HeaderFilters...),
	}
}

// Do implements Policy interface
func (p *LoggingPolicy) Do(
	req *http.Request,
	next func(*http.Request) (*http.Response, error),
) (*http.Response, error) {
	if !p.logger.Enabled(logging.DebugLevel) {
		return next(req)
	}

	p.logRequest(req)

	start := time.Now()
	resp, err := next(req)
	duration := time.Since(start)

	if err != nil {
		p.logRequestFailure(req, err, duration)
		return resp, err
	}

	p.logResponse(req, resp, duration)
	return resp, nil
}

func (p *LoggingPolicy) logRequest(req *http.Request) {
	fields := []logging.Field{
		logging.String("method", req.Method),
		logging.String("url", req.URL.String()),
	}

	if p.logHeaders && len(req.Header) > 0 {
		fields = append(fields, p.formatHeaders("request_headers", req.Header))
	}

	if p.logBody && req.Body != nil && req.Body != http.NoBody {
		head, body, err := peekBody(req.Body)
		req.Body = body
		if err == nil {
			fields = append(fields, p.formatBody("request_body", head)...)
		}
	}

	p.logger.Debug("HTTP Request", fields...)
}

func (p *LoggingPolicy) logRequestFailure(req *http.Request, err error, duration time.Duration) {
	p.logger.Debug("HTTP Request failed",
		logging.String("method", req.Method),
		logging.String("url", req.URL.String()),
		logging.String("code", adapter.TransportCode(err)),
		logging.Error(err),
		logging.Int("duration_ms", int(duration.Milliseconds())))
}

func (p *LoggingPolicy) logResponse(req *http.Request, resp *http.Response, duration time.Duration) {
	respFields := []logging.Field{
		logging.String("method", req.Method),
		logging.String("url", req.URL.String()),
		logging.Int("status", resp.StatusCode),
		logging.Int("duration_ms", int(duration.Milliseconds())),
	}

	if p.logHeaders && len(resp.Header) > 0 {
		respFields = append(respFields, p.formatHeaders("response_headers", resp.Header))
	}

	if p.logBody && resp.Body != nil && resp.Body != http.NoBody {
		head, body, err := peekBody(resp.Body)
		resp.Body = body
		if err == nil {
			respFields = append(respFields, p.formatBody("response_body", head)...)
		}
	}

	p.logger.Debug("HTTP Response", respFields...)
}

func (p *LoggingPolicy) formatBody(key string, head []byte) []logging.Field {
	var fields []logging.Field
	if p.redactBody {
		fields = append(fields, logging.String(key+"_size", fmt.Sprintf("%d bytes", len(head))))
	} else {
		fields = append(fields, logging.String(key, string(head)))
	}
	if len(head) == maxLoggedBody {
		fields = append(fields, logging.Bool(key+"_truncated", true))
	}
	return fields
}

// formatHeaders renders headers sorted by name, redacting filtered values
func (p *LoggingPolicy) formatHeaders(key string, headers http.Header) logging.Field {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.Join(headers[name], ", ")
		if p.redacted(name) {
			value = "[REDACTED]"
		}
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, value))
	}
	return logging.String(key, strings.Join(headerStrings, "; "))
}

func (p *LoggingPolicy) redacted(name string) bool {
	for _, filter := range p.headerFilters {
		if strings.EqualFold(name, filter) {
			return true
		}
	}
	return false
}

type bodyReader struct {
	io.Reader
	io.Closer
}

// peekBody reads up to maxLoggedBody bytes from body and returns them with a
// replacement that replays them ahead of the unread remainder. Closing the
// replacement closes the original body.
func peekBody(body io.ReadCloser) ([]byte, io.ReadCloser, error) {
	head, err := io.ReadAll(io.LimitReader(body, maxLoggedBody))
	return head, bodyReader{
		Reader: io.MultiReader(bytes.NewReader(head), body),
		Closer: body,
	}, err
}
