package httpclient

import (
	"errors"
	"net/http"

	"github.com/julienstroheker/httperr/adapter"
	"github.com/julienstroheker/httperr/enhancer"
)

// ErrBadStatus is wrapped by failures built from responses with status >= 400
var ErrBadStatus = errors.New("bad response status")

// ErrorPolicy turns transport errors and error statuses into
// *enhancer.RequestError values carrying the request config
type ErrorPolicy struct{}

// NewErrorPolicy creates a new ErrorPolicy
func NewErrorPolicy() *ErrorPolicy {
	return &ErrorPolicy{}
}

// Do implements Policy interface
func (p *ErrorPolicy) Do(
	req *http.Request,
	next func(*http.Request) (*http.Response, error),
) (*http.Response, error) {
	resp, err := next(req)
	if err != nil {
		// SDK errors raised by custom policies keep their status and body
		var failure enhancer.Failure
		if normalized := adapter.Normalize(err); errors.As(normalized, &failure) {
			return resp, normalized
		}
		return resp, &enhancer.RequestError{
			Config: requestConfig(req),
			Code:   adapter.TransportCode(err),
			Err:    err,
		}
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	body, readErr := adapter.ReadBody(resp)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, &enhancer.RequestError{
			Config: requestConfig(req),
			Code:   adapter.TransportCode(readErr),
			Err:    readErr,
		}
	}

	return nil, &enhancer.RequestError{
		Config:   requestConfig(req),
		Response: enhancer.ResponseFromHTTP(resp, body),
		Code:     adapter.StatusCode(resp.StatusCode),
		Message:  adapter.StatusMessage(resp.StatusCode),
		Err:      ErrBadStatus,
	}
}

func requestConfig(req *http.Request) *enhancer.RequestConfig {
	if config := RequestConfigFrom(req.Context()); config != nil {
		return config
	}
	return enhancer.ConfigFromRequest(req)
}
