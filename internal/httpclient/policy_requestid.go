package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

const defaultRequestIDHeader = "X-Client-Request-Id"

// RequestIDPolicy tags each request with a unique ID so a failure can be
// matched with server-side logs
type RequestIDPolicy struct {
	headerName string
}

// NewRequestIDPolicy creates a new RequestIDPolicy. An empty header name uses
// X-Client-Request-Id.
func NewRequestIDPolicy(headerName string) *RequestIDPolicy {
	if headerName == "" {
		headerName = defaultRequestIDHeader
	}
	return &RequestIDPolicy{headerName: headerName}
}

// Do implements Policy interface
func (p *RequestIDPolicy) Do(
	req *http.Request,
	next func(*http.Request) (*http.Response, error),
) (*http.Response, error) {
	// Callers may pin their own ID
	if req.Header.Get(p.headerName) == "" {
		req.Header.Set(p.headerName, uuid.NewString())
	}
	return next(req)
}
