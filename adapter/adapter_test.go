package adapter

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/google/go-github/v67/github"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julienstroheker/httperr/enhancer"
)

func newResponse(t *testing.T, method, rawURL string, status int, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func requireEnhanced(t *testing.T, err error) *enhancer.Error {
	t.Helper()
	e, ok := enhancer.As(enhancer.Enhance(err))
	require.True(t, ok, "expected an enhanced error from %T", err)
	return e
}

func TestFromAzure(t *testing.T) {
	resp := newResponse(t, http.MethodPut,
		"https://management.azure.com/subscriptions/sub/resourceGroups/rg?api-version=2021-11-01",
		http.StatusConflict,
		`{"error":{"code":"Conflict","message":"The resource group is being deleted."}}`)
	respErr := &azcore.ResponseError{
		ErrorCode:   "Conflict",
		StatusCode:  http.StatusConflict,
		RawResponse: resp,
	}

	failure := FromAzure(fmt.Errorf("create group: %w", respErr))

	var reqErr *enhancer.RequestError
	require.ErrorAs(t, failure, &reqErr)
	assert.Equal(t, "Conflict", reqErr.Code)
	assert.Equal(t, url.Values{"api-version": []string{"2021-11-01"}}, reqErr.Config.Params)
	assert.ErrorIs(t, failure, respErr)

	e := requireEnhanced(t, failure)
	assert.Equal(t,
		"[409] PUT https://management.azure.com/subscriptions/sub/resourceGroups/rg (The resource group is being deleted.): Request failed with status code 409",
		e.Error())
	assert.Equal(t, "Conflict", e.Transport().Code)

	// The body is still readable after conversion.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "being deleted")
}

func TestFromAzure_NewResponseError(t *testing.T) {
	resp := newResponse(t, http.MethodGet,
		"https://vault.azure.net/secrets/db",
		http.StatusNotFound,
		`{"error":{"code":"SecretNotFound","message":"Secret not found: db"}}`)
	err := runtime.NewResponseError(resp)

	var respErr *azcore.ResponseError
	require.ErrorAs(t, err, &respErr)

	e := requireEnhanced(t, FromAzure(err))
	assert.Equal(t, http.StatusNotFound, e.Transport().Status)
	assert.Equal(t, "https://vault.azure.net/secrets/db", e.Transport().URL)
	assert.Equal(t, respErr.ErrorCode, e.Transport().Code)
	assert.Equal(t, "Secret not found: db", e.Transport().Message)
}

func TestFromAzure_UnreadableBody(t *testing.T) {
	resp := newResponse(t, http.MethodGet, "https://vault.azure.net/secrets/db", http.StatusInternalServerError, "")
	bodyErr := stderrors.New("connection reset")
	resp.Body = io.NopCloser(iotest.ErrReader(bodyErr))
	respErr := &azcore.ResponseError{
		ErrorCode:   "InternalError",
		StatusCode:  http.StatusInternalServerError,
		RawResponse: resp,
	}

	failure := FromAzure(respErr)

	var reqErr *enhancer.RequestError
	require.ErrorAs(t, failure, &reqErr)
	assert.ErrorIs(t, failure, respErr)
	assert.ErrorIs(t, failure, bodyErr)
	assert.Nil(t, reqErr.Response.Data)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Response.Status)
	assert.Equal(t, "InternalError", reqErr.Code)
}

func TestFromAzure_PassThrough(t *testing.T) {
	plain := stderrors.New("plain")
	require.Same(t, plain, FromAzure(plain))

	noResponse := &azcore.ResponseError{ErrorCode: "X", StatusCode: 500}
	require.Same(t, noResponse, FromAzure(noResponse))
}

func TestFromGitHub_ErrorResponse(t *testing.T) {
	resp := newResponse(t, http.MethodPost, "https://api.github.com/repos/o/r/issues", http.StatusUnprocessableEntity, "")
	ghErr := &github.ErrorResponse{
		Response:         resp,
		Message:          "Validation Failed",
		DocumentationURL: "https://docs.github.com/rest/issues",
		Errors: []github.Error{
			{Resource: "Issue", Field: "title", Code: "missing_field"},
		},
	}

	e := requireEnhanced(t, FromGitHub(ghErr))
	assert.Equal(t,
		"[422] POST https://api.github.com/repos/o/r/issues (Validation Failed): Request failed with status code 422",
		e.Error())
	assert.Equal(t, "missing_field", e.Transport().Code)
	assert.ErrorIs(t, e, ghErr)

	data, ok := e.Transport().Response.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://docs.github.com/rest/issues", data["documentation_url"])
	assert.Len(t, data["errors"], 1)
}

func TestFromGitHub_RateLimits(t *testing.T) {
	resp := newResponse(t, http.MethodGet, "https://api.github.com/user", http.StatusForbidden, "")

	e := requireEnhanced(t, FromGitHub(&github.RateLimitError{
		Response: resp,
		Message:  "API rate limit exceeded",
	}))
	assert.Equal(t, CodeRateLimited, e.Transport().Code)
	assert.Equal(t, "API rate limit exceeded", e.Transport().Message)

	e = requireEnhanced(t, FromGitHub(&github.AbuseRateLimitError{
		Response: resp,
		Message:  "secondary rate limit",
	}))
	assert.Equal(t, CodeSecondaryRateLimited, e.Transport().Code)
}

func TestFromGitHub_PassThrough(t *testing.T) {
	plain := stderrors.New("plain")
	require.Same(t, plain, FromGitHub(plain))

	noResponse := &github.ErrorResponse{Message: "x"}
	require.Same(t, noResponse, FromGitHub(noResponse))
}

func TestFromSmithy(t *testing.T) {
	raw := newResponse(t, http.MethodGet, "https://bucket.s3.amazonaws.com/key.txt?x-id=GetObject", http.StatusForbidden, "")
	opErr := &smithy.OperationError{
		ServiceID:     "S3",
		OperationName: "GetObject",
		Err: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: raw},
			Err:      &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"},
		},
	}

	e := requireEnhanced(t, FromSmithy(opErr))
	assert.Equal(t,
		"[403] GET https://bucket.s3.amazonaws.com/key.txt (Access Denied): Request failed with status code 403",
		e.Error())
	assert.Equal(t, "AccessDenied", e.Transport().Code)
	assert.ErrorIs(t, e, opErr)
}

func TestFromSmithy_AWSRequestID(t *testing.T) {
	raw := newResponse(t, http.MethodPut, "https://sqs.us-east-1.amazonaws.com/queue", http.StatusBadRequest, "")
	opErr := &smithy.OperationError{
		ServiceID:     "SQS",
		OperationName: "SendMessage",
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: raw},
				Err:      &smithy.GenericAPIError{Code: "InvalidParameterValue", Message: "Message is too long"},
			},
			RequestID: "req-123",
		},
	}

	e := requireEnhanced(t, FromSmithy(opErr))
	assert.Equal(t, "InvalidParameterValue", e.Transport().Code)
	assert.Equal(t, "Message is too long", e.Transport().Message)
	assert.Equal(t, "req-123", e.Transport().Response.Header.Get("X-Amz-Request-Id"))
}

func TestFromSmithy_WithoutAPIError(t *testing.T) {
	raw := newResponse(t, http.MethodHead, "https://bucket.s3.amazonaws.com/key.txt", http.StatusNotFound, "")
	respErr := &smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: raw},
		Err:      stderrors.New("not found"),
	}

	e := requireEnhanced(t, FromSmithy(respErr))
	assert.Equal(t, "[404] HEAD https://bucket.s3.amazonaws.com/key.txt: Request failed with status code 404", e.Error())
	assert.Empty(t, e.Transport().Code)
}

func TestFromSmithy_PassThrough(t *testing.T) {
	plain := stderrors.New("plain")
	require.Same(t, plain, FromSmithy(plain))

	noResponse := &smithyhttp.ResponseError{Err: plain}
	require.Same(t, noResponse, FromSmithy(noResponse))
}

func TestFromHandshake_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	rawURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream?token=abc"
	conn, resp, err := websocket.DefaultDialer.Dial(rawURL, nil)
	if conn != nil {
		_ = conn.Close()
	}
	require.ErrorIs(t, err, websocket.ErrBadHandshake)

	e := requireEnhanced(t, FromHandshake(rawURL, resp, err))
	wantURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	assert.Equal(t, "[401] GET "+wantURL+" (token expired): Request failed with status code 401", e.Error())
	assert.Equal(t, CodeBadHandshake, e.Transport().Code)
}

func TestFromHandshake_Refused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	rawURL := "ws://" + addr + "/stream"
	_, resp, dialErr := websocket.DefaultDialer.Dial(rawURL, nil)
	require.Error(t, dialErr)

	e := requireEnhanced(t, FromHandshake(rawURL, resp, dialErr))
	assert.Equal(t, CodeConnRefused, e.Transport().Code)
	assert.Zero(t, e.Transport().Status)
	assert.True(t, strings.HasPrefix(e.Error(), "GET "+rawURL+": "), e.Error())
}

func TestFromHandshake_Nil(t *testing.T) {
	require.NoError(t, FromHandshake("ws://localhost/", nil, nil))

	bad := stderrors.New("dial failed")
	require.Same(t, bad, FromHandshake("://bad url", nil, bad))
}

func TestNormalize(t *testing.T) {
	require.NoError(t, Normalize(nil))

	plain := stderrors.New("plain")
	require.Same(t, plain, Normalize(plain))

	existing := &enhancer.RequestError{Config: &enhancer.RequestConfig{URL: "http://x/"}}
	require.Same(t, existing, Normalize(existing))

	resp := newResponse(t, http.MethodGet, "https://api.github.com/user", http.StatusUnauthorized, "")
	normalized := Normalize(&github.ErrorResponse{Response: resp, Message: "Bad credentials"})
	var reqErr *enhancer.RequestError
	require.ErrorAs(t, normalized, &reqErr)
	require.Equal(t, http.StatusUnauthorized, reqErr.Response.Status)
}

func TestTransportCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "canceled", err: fmt.Errorf("do: %w", context.Canceled), want: CodeCanceled},
		{name: "deadline", err: context.DeadlineExceeded, want: CodeTimeout},
		{name: "io deadline", err: os.ErrDeadlineExceeded, want: CodeTimeout},
		{
			name: "refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			want: CodeConnRefused,
		},
		{
			name: "reset",
			err:  &net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("read", syscall.ECONNRESET)},
			want: CodeConnReset,
		},
		{name: "unexpected eof", err: io.ErrUnexpectedEOF, want: CodeConnReset},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "nock.invalid", IsNotFound: true}, want: CodeHostNotFound},
		{name: "dns timeout", err: &net.DNSError{Err: "timeout", Name: "nock.invalid", IsTimeout: true}, want: CodeTimeout},
		{name: "other", err: stderrors.New("tls: handshake failure"), want: CodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TransportCode(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, CodeBadRequest, StatusCode(http.StatusBadRequest))
	require.Equal(t, CodeBadRequest, StatusCode(http.StatusNotFound))
	require.Equal(t, CodeBadResponse, StatusCode(http.StatusInternalServerError))
	require.Equal(t, CodeBadResponse, StatusCode(http.StatusGatewayTimeout))
}

func TestReadBody(t *testing.T) {
	body, err := ReadBody(nil)
	require.NoError(t, err)
	require.Nil(t, body)

	resp := &http.Response{Body: io.NopCloser(strings.NewReader("payload"))}
	body, err = ReadBody(resp)
	require.NoError(t, err)
	require.Equal(t, "payload", string(body))

	again, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "payload", string(again))
}
