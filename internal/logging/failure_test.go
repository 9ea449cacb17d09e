package logging

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/julienstroheker/httperr/enhancer"
)

func fieldMap(fields []Field) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func TestFailure_PlainError(t *testing.T) {
	fields := Failure(errors.New("boom"))
	if len(fields) != 1 || fields[0].Key != "error" || fields[0].Value != "boom" {
		t.Errorf("Expected a single error field, got: %v", fields)
	}
}

func TestFailure_EnhancedError(t *testing.T) {
	err := enhancer.Enhance(&enhancer.RequestError{
		Config:   &enhancer.RequestConfig{Method: "post", URL: "http://nock/"},
		Response: &enhancer.Response{Status: 400, Data: map[string]any{"message": "invalid request"}},
		Code:     "ERR_BAD_REQUEST",
		Message:  "Request failed with status code 400",
	})

	got := fieldMap(Failure(err))

	want := map[string]any{
		"kind":           "HttpRequestFailed",
		"method":         "POST",
		"url":            "http://nock/",
		"status":         400,
		"server_message": "invalid request",
		"code":           "ERR_BAD_REQUEST",
		"error":          "[400] POST http://nock/ (invalid request): Request failed with status code 400",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Expected %s=%v, got: %v", k, v, got[k])
		}
	}
}

func TestFailure_OmitsUnknownFields(t *testing.T) {
	err := enhancer.Enhance(&enhancer.RequestError{
		Config: &enhancer.RequestConfig{URL: "http://nock/"},
		Err:    errors.New("dial tcp: connection refused"),
	})

	got := fieldMap(Failure(err))
	for _, key := range []string{"status", "server_message", "code"} {
		if _, ok := got[key]; ok {
			t.Errorf("Expected %s to be omitted, got: %v", key, got)
		}
	}

	buf := &bytes.Buffer{}
	NewWithOutput(WarnLevel, buf).Warn("HTTP request failed", Failure(err)...)
	if !strings.Contains(buf.String(), "kind=HttpRequestFailed method=GET url=http://nock/") {
		t.Errorf("Expected failure fields in log line, got: %s", buf.String())
	}
}

func TestFailure_RequestID(t *testing.T) {
	header := http.Header{}
	header.Set("X-Ms-Request-Id", "server-id")
	header.Set("X-Client-Request-Id", "client-id")

	err := enhancer.Enhance(&enhancer.RequestError{
		Config:   &enhancer.RequestConfig{URL: "http://nock/"},
		Response: &enhancer.Response{Status: 503, Header: header},
	})

	got := fieldMap(Failure(err))
	if got["request_id"] != "server-id" {
		t.Errorf("Expected request_id=server-id, got: %v", got["request_id"])
	}
}
