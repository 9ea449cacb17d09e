package httpclient

import (
	"net/http"
)

// Policy is a middleware step in the client's request pipeline
type Policy interface {
	// Do runs the policy and calls the next policy in the chain
	Do(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error)
}

// PolicyFunc adapts a function to the Policy interface
type PolicyFunc func(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error)

// Do implements Policy interface
func (f PolicyFunc) Do(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	return f(req, next)
}
