package httpclient

import (
	"net/http"

	"github.com/julienstroheker/httperr/adapter"
	"github.com/julienstroheker/httperr/enhancer"
	"github.com/julienstroheker/httperr/internal/logging"
)

// EnhancePolicy replaces failures with enhanced errors and logs them. Errors
// from SDK transports plugged in as custom policies are converted by
// adapter.Normalize first.
type EnhancePolicy struct {
	enhancer *enhancer.Enhancer
	logger   *logging.Logger
}

// NewEnhancePolicy creates a new EnhancePolicy. A nil enhancer uses the defaults.
func NewEnhancePolicy(e *enhancer.Enhancer, logger *logging.Logger) *EnhancePolicy {
	if e == nil {
		e = enhancer.Configure(nil)
	}
	return &EnhancePolicy{enhancer: e, logger: logger}
}

// Do implements Policy interface
func (p *EnhancePolicy) Do(
	req *http.Request,
	next func(*http.Request) (*http.Response, error),
) (*http.Response, error) {
	resp, err := next(req)
	if err == nil {
		return resp, nil
	}

	err = p.enhancer.Enhance(adapter.Normalize(err))
	p.logger.Warn("HTTP request failed", logging.Failure(err)...)
	return resp, err
}
