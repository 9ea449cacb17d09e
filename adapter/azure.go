package adapter

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/julienstroheker/httperr/enhancer"
)

// FromAzure converts an *azcore.ResponseError found in err's chain. The
// service error code (for example "ResourceNotFound") becomes the transport
// code. err is returned unchanged when it holds no Azure response error.
func FromAzure(err error) error {
	if failure, ok := azureFailure(err); ok {
		return failure
	}
	return err
}

func azureFailure(err error) (*enhancer.RequestError, bool) {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return nil, false
	}
	raw := respErr.RawResponse
	if raw == nil || raw.Request == nil {
		return nil, false
	}

	cause := err
	var body []byte
	if raw.Body != nil {
		// Payload caches the body, so it stays readable for other consumers.
		var readErr error
		if body, readErr = runtime.Payload(raw); readErr != nil {
			cause = errors.Join(err, fmt.Errorf("failed to read response body: %w", readErr))
		}
	}

	status := respErr.StatusCode
	if status == 0 {
		status = raw.StatusCode
	}
	res := enhancer.ResponseFromHTTP(raw, body)
	res.Status = status

	return &enhancer.RequestError{
		Config:   enhancer.ConfigFromRequest(raw.Request),
		Response: res,
		Code:     respErr.ErrorCode,
		Message:  StatusMessage(status),
		Err:      cause,
	}, true
}
