package enhancer

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ConfigFromRequest builds a RequestConfig from an outgoing request. The query
// string is moved to Params so it stays out of the derived URL.
func ConfigFromRequest(req *http.Request) *RequestConfig {
	if req == nil {
		return nil
	}
	config := &RequestConfig{Method: req.Method}
	if req.URL != nil {
		u := *req.URL
		if u.RawQuery != "" {
			config.Params = u.Query()
			u.RawQuery = ""
		}
		u.Fragment = ""
		config.URL = u.String()
	}
	return config
}

// ResponseFromHTTP builds a Response from resp and its already-read body.
func ResponseFromHTTP(resp *http.Response, body []byte) *Response {
	if resp == nil {
		return nil
	}
	return &Response{
		Status: resp.StatusCode,
		Data:   DecodeBody(body),
		Header: resp.Header.Clone(),
	}
}

// DecodeBody decodes a JSON body. Bodies that are not valid JSON are returned
// as a string, and empty bodies as nil.
func DecodeBody(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return string(body)
	}
	return data
}
