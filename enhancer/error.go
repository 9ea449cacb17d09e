package enhancer

import (
	"encoding/json"
	"errors"
)

// KindHTTPRequestFailed is the kind of every error produced by Enhance.
const KindHTTPRequestFailed = "HttpRequestFailed"

// RequestContext is the context derived from a failure. Zero values mean the
// field is unknown: Status is 0 when no response was received, Message is empty
// when the server supplied none.
type RequestContext struct {
	Method  string `json:"method"`
	URL     string `json:"url"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Transport is the info payload of an enhanced error.
type Transport struct {
	RequestContext

	// Response is the raw response reference. It is excluded from JSON output.
	Response *Response
}

// ToJSON returns the serializable projection of t, without the raw response.
func (t *Transport) ToJSON() RequestContext {
	if t == nil {
		return RequestContext{}
	}
	return t.RequestContext
}

// MarshalJSON encodes the projection returned by ToJSON.
func (t *Transport) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToJSON())
}

// Info is the structured payload attached to an enhanced error.
type Info struct {
	Transport *Transport `json:"transport"`
}

// Error is a failed HTTP request enriched with its request context.
type Error struct {
	message   string
	summary   string
	cause     error
	transport *Transport
}

// Error returns the summary followed by the cause's message.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.message
}

// Unwrap returns the original error.
func (e *Error) Unwrap() error { return e.cause }

// Cause returns the original error.
func (e *Error) Cause() error { return e.cause }

// Kind always returns KindHTTPRequestFailed.
func (e *Error) Kind() string { return KindHTTPRequestFailed }

// Name is an alias of Kind.
func (e *Error) Name() string { return KindHTTPRequestFailed }

// Summary returns the formatted prefix of the message. It may be empty when a
// custom formatter returned nothing.
func (e *Error) Summary() string { return e.summary }

// Transport returns the derived request context and response reference.
func (e *Error) Transport() *Transport { return e.transport }

// Info returns the structured payload.
func (e *Error) Info() Info {
	return Info{Transport: e.transport}
}

// MarshalJSON emits the kind, message and the info projection.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Info    Info   `json:"info"`
	}{
		Name:    KindHTTPRequestFailed,
		Message: e.message,
		Info:    e.Info(),
	})
}

// As returns the first enhanced error in err's chain.
func As(err error) (*Error, bool) {
	var enhanced *Error
	if errors.As(err, &enhanced) {
		return enhanced, true
	}
	return nil, false
}

// IsRequestFailed reports whether err's chain contains an enhanced error.
func IsRequestFailed(err error) bool {
	_, ok := As(err)
	return ok
}
