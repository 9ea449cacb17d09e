package enhancer

import (
	"net/http"
	"net/url"
)

// RequestConfig describes the request that produced a failure.
type RequestConfig struct {
	// Method is the HTTP method. Case does not matter.
	Method string

	// Type is an alternative method field used by some clients when Method is empty.
	Type string

	// URL is the request path, or the absolute URL when BaseURL is empty.
	URL string

	// BaseURL is joined with URL when set.
	BaseURL string

	// Params holds query parameters. They are sent with the request but never
	// appear in the derived URL.
	Params url.Values
}

// Response is the HTTP response received before the failure, if any.
type Response struct {
	Status int
	// Data is the decoded body. It comes from the remote server and has no
	// guaranteed shape.
	Data   any
	Header http.Header
}

// Failure is implemented by errors that originate from an HTTP request attempt.
//
// Implementations may also provide HTTPResponse() *Response when a response was
// received and ErrorCode() string when the transport classified the failure
// (for example ECONNRESET or ETIMEDOUT).
type Failure interface {
	error
	RequestConfig() *RequestConfig
}

type responder interface {
	HTTPResponse() *Response
}

type coder interface {
	ErrorCode() string
}

// RequestError is a ready-made Failure for transports and adapters.
type RequestError struct {
	Config   *RequestConfig
	Response *Response
	Code     string
	Message  string
	Err      error
}

var _ Failure = (*RequestError)(nil)

// Error returns Message, falling back to the wrapped error's text.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *RequestError) RequestConfig() *RequestConfig {
	if e == nil {
		return nil
	}
	return e.Config
}

func (e *RequestError) HTTPResponse() *Response {
	if e == nil {
		return nil
	}
	return e.Response
}

func (e *RequestError) ErrorCode() string {
	if e == nil {
		return ""
	}
	return e.Code
}
