package httpclient

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julienstroheker/httperr/enhancer"
)

// MetricsPolicy counts failed requests by method, status and code
type MetricsPolicy struct {
	failures *prometheus.CounterVec
}

// NewMetricsPolicy registers the failure counter on reg. A counter already
// registered by another client is shared.
func NewMetricsPolicy(reg prometheus.Registerer) *MetricsPolicy {
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "httperr_request_failures_total",
		Help: "HTTP requests that failed, by method, response status and error code.",
	}, []string{"method", "status", "code"})

	if err := reg.Register(failures); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		failures = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return &MetricsPolicy{failures: failures}
}

// Do implements Policy interface
func (p *MetricsPolicy) Do(
	req *http.Request,
	next func(*http.Request) (*http.Response, error),
) (*http.Response, error) {
	resp, err := next(req)
	if err == nil {
		return resp, nil
	}

	status := "none"
	code := ""
	var failure *enhancer.RequestError
	if errors.As(err, &failure) {
		code = failure.Code
		if failure.Response != nil && failure.Response.Status != 0 {
			status = strconv.Itoa(failure.Response.Status)
		}
	}
	p.failures.WithLabelValues(req.Method, status, code).Inc()
	return resp, err
}
