// Package adapter converts failures from third-party HTTP stacks into
// *enhancer.RequestError values so they can be enhanced like any other failed
// request.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
)

// Transport error codes.
const (
	CodeTimeout      = "ETIMEDOUT"
	CodeCanceled     = "ERR_CANCELED"
	CodeConnRefused  = "ECONNREFUSED"
	CodeConnReset    = "ECONNRESET"
	CodeHostNotFound = "ENOTFOUND"
	CodeNetwork      = "ERR_NETWORK"
	CodeBadRequest   = "ERR_BAD_REQUEST"
	CodeBadResponse  = "ERR_BAD_RESPONSE"
	CodeBadHandshake = "ERR_BAD_HANDSHAKE"
)

// maxBodySize caps how much of an error body is read.
const maxBodySize = 1 << 20

// TransportCode classifies an error raised before any response was received.
// It returns "" for nil.
func TransportCode(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, io.ErrUnexpectedEOF):
		return CodeConnReset
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return CodeTimeout
		}
		return CodeHostNotFound
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}

	return CodeNetwork
}

// StatusCode returns the code for a response with a failing status.
func StatusCode(status int) string {
	if status >= http.StatusInternalServerError {
		return CodeBadResponse
	}
	return CodeBadRequest
}

// StatusMessage returns the message used for failures caused by a status code.
func StatusMessage(status int) string {
	return fmt.Sprintf("Request failed with status code %d", status)
}

// ReadBody reads at most 1 MiB of resp's body and puts the bytes back so the
// caller can read it again.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil || resp.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return body, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
