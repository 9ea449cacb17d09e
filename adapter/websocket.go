package adapter

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/julienstroheker/httperr/enhancer"
)

// FromHandshake converts the result of a failed websocket dial.
//
//	conn, resp, err := dialer.DialContext(ctx, rawURL, nil)
//	if err != nil {
//	    return enhancer.Enhance(adapter.FromHandshake(rawURL, resp, err))
//	}
//
// A rejected handshake carries the server's response, so its status and body
// are reported. Failures without a response get a transport code instead.
func FromHandshake(rawURL string, resp *http.Response, err error) error {
	if err == nil {
		return nil
	}

	req, reqErr := http.NewRequest(http.MethodGet, rawURL, nil)
	if reqErr != nil {
		return err
	}
	failure := &enhancer.RequestError{
		Config: enhancer.ConfigFromRequest(req),
		Err:    err,
	}

	if resp == nil {
		failure.Code = TransportCode(err)
		return failure
	}

	body, _ := ReadBody(resp)
	failure.Response = enhancer.ResponseFromHTTP(resp, body)
	failure.Message = StatusMessage(resp.StatusCode)
	failure.Code = StatusCode(resp.StatusCode)
	if errors.Is(err, websocket.ErrBadHandshake) {
		failure.Code = CodeBadHandshake
	}
	return failure
}
