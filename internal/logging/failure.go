package logging

import (
	"github.com/julienstroheker/httperr/enhancer"
)

// Failure returns the fields describing a failed HTTP request. Enhanced errors
// expand into kind, method, url and, when known, status, message, code and
// the server's request ID.
// Any other error yields a single error field.
func Failure(err error) []Field {
	enhanced, ok := enhancer.As(err)
	if !ok {
		return []Field{Error(err)}
	}

	ctx := enhanced.Transport().ToJSON()
	fields := []Field{
		String("kind", enhanced.Kind()),
		String("method", ctx.Method),
		String("url", ctx.URL),
	}
	if ctx.Status != 0 {
		fields = append(fields, Int("status", ctx.Status))
	}
	if ctx.Message != "" {
		fields = append(fields, String("server_message", ctx.Message))
	}
	if ctx.Code != "" {
		fields = append(fields, String("code", ctx.Code))
	}
	if id := responseRequestID(enhanced.Transport()); id != "" {
		fields = append(fields, String("request_id", id))
	}
	return append(fields, Error(err))
}

// requestIDHeaders are checked in order for a server-assigned request ID
var requestIDHeaders = []string{"X-Ms-Request-Id", "X-Amz-Request-Id", "X-Request-Id", "X-Client-Request-Id"}

func responseRequestID(t *enhancer.Transport) string {
	if t == nil || t.Response == nil {
		return ""
	}
	for _, name := range requestIDHeaders {
		if id := t.Response.Header.Get(name); id != "" {
			return id
		}
	}
	return ""
}
