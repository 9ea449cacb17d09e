package adapter

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v67/github"

	"github.com/julienstroheker/httperr/enhancer"
)

// GitHub rate limit codes.
const (
	CodeRateLimited          = "RATE_LIMITED"
	CodeSecondaryRateLimited = "SECONDARY_RATE_LIMITED"
)

// FromGitHub converts go-github API errors found in err's chain. go-github
// consumes the response body itself, so the response data is rebuilt from the
// decoded fields.
func FromGitHub(err error) error {
	if failure, ok := githubFailure(err); ok {
		return failure
	}
	return err
}

func githubFailure(err error) (*enhancer.RequestError, bool) {
	var (
		resp    *http.Response
		message string
		code    string
		data    = map[string]any{}
	)

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	switch {
	case errors.As(err, &rateErr):
		resp, message, code = rateErr.Response, rateErr.Message, CodeRateLimited
	case errors.As(err, &abuseErr):
		resp, message, code = abuseErr.Response, abuseErr.Message, CodeSecondaryRateLimited
	case errors.As(err, &respErr):
		resp, message = respErr.Response, respErr.Message
		if respErr.DocumentationURL != "" {
			data["documentation_url"] = respErr.DocumentationURL
		}
		if len(respErr.Errors) > 0 {
			code = respErr.Errors[0].Code
			details := make([]any, 0, len(respErr.Errors))
			for _, e := range respErr.Errors {
				details = append(details, map[string]any{
					"resource": e.Resource,
					"field":    e.Field,
					"code":     e.Code,
					"message":  e.Message,
				})
			}
			data["errors"] = details
		}
	default:
		return nil, false
	}

	if resp == nil || resp.Request == nil {
		return nil, false
	}
	if message != "" {
		data["message"] = message
	}

	return &enhancer.RequestError{
		Config: enhancer.ConfigFromRequest(resp.Request),
		Response: &enhancer.Response{
			Status: resp.StatusCode,
			Data:   data,
			Header: resp.Header.Clone(),
		},
		Code:    code,
		Message: StatusMessage(resp.StatusCode),
		Err:     err,
	}, true
}
