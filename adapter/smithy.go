package adapter

import (
	"errors"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/julienstroheker/httperr/enhancer"
)

// amzRequestIDHeader carries the AWS request ID on converted responses.
const amzRequestIDHeader = "X-Amz-Request-Id"

// FromSmithy converts AWS SDK failures, which surface as
// *smithyhttp.ResponseError (usually inside a *smithy.OperationError). The API
// error code and message, when present, become the transport code and the
// response message. The request ID of an *awshttp.ResponseError is kept in the
// X-Amz-Request-Id response header.
func FromSmithy(err error) error {
	if failure, ok := smithyFailure(err); ok {
		return failure
	}
	return err
}

func smithyFailure(err error) (*enhancer.RequestError, bool) {
	var respErr *smithyhttp.ResponseError
	if !errors.As(err, &respErr) {
		return nil, false
	}
	if respErr.Response == nil || respErr.Response.Response == nil {
		return nil, false
	}
	raw := respErr.Response.Response
	if raw.Request == nil {
		return nil, false
	}

	failure := &enhancer.RequestError{
		Config: enhancer.ConfigFromRequest(raw.Request),
		Response: &enhancer.Response{
			Status: raw.StatusCode,
			Header: raw.Header.Clone(),
		},
		Message: StatusMessage(raw.StatusCode),
		Err:     err,
	}

	var awsErr *awshttp.ResponseError
	if errors.As(err, &awsErr) && awsErr.RequestID != "" {
		if failure.Response.Header == nil {
			failure.Response.Header = http.Header{}
		}
		failure.Response.Header.Set(amzRequestIDHeader, awsErr.RequestID)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		failure.Code = apiErr.ErrorCode()
		data := map[string]any{"code": apiErr.ErrorCode()}
		if msg := apiErr.ErrorMessage(); msg != "" {
			data["message"] = msg
		}
		failure.Response.Data = data
	}

	return failure, true
}
