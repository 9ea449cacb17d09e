package enhancer

import (
	"errors"
	"strings"
)

// MessageExtractor pulls a server-provided message out of a response. It must
// tolerate a nil response and bodies of any shape.
type MessageExtractor func(res *Response) string

// SummaryFormatter builds the human-readable prefix of an enhanced error.
type SummaryFormatter func(ctx RequestContext) string

// Options overrides the functions an Enhancer is bound to. Nil fields keep the
// defaults.
type Options struct {
	// ExtractMessage replaces DefaultExtractMessage.
	ExtractMessage MessageExtractor

	// FormatSummary replaces DefaultFormatSummary.
	FormatSummary SummaryFormatter
}

// Enhancer wraps failures with request context. It holds no mutable state and
// is safe for concurrent use.
type Enhancer struct {
	extractMessage MessageExtractor
	formatSummary  SummaryFormatter
}

var defaultEnhancer = Configure(nil)

// Configure returns a new Enhancer bound to the given options.
func Configure(opts *Options) *Enhancer {
	e := &Enhancer{
		extractMessage: DefaultExtractMessage,
		formatSummary:  DefaultFormatSummary,
	}
	if opts == nil {
		return e
	}
	if opts.ExtractMessage != nil {
		e.extractMessage = opts.ExtractMessage
	}
	if opts.FormatSummary != nil {
		e.formatSummary = opts.FormatSummary
	}
	return e
}

// Enhance enhances err with the default extractor and formatter.
func Enhance(err error) error {
	return defaultEnhancer.Enhance(err)
}

// Enhance returns an *Error describing the failed request behind err.
//
// err is returned unchanged when it is nil, already enhanced, or carries no
// request configuration.
func (e *Enhancer) Enhance(err error) error {
	if err == nil {
		return nil
	}
	if IsRequestFailed(err) {
		return err
	}

	var failure Failure
	if !errors.As(err, &failure) {
		return err
	}
	config := failure.RequestConfig()
	if config == nil {
		return err
	}

	var res *Response
	if r, ok := failure.(responder); ok {
		res = r.HTTPResponse()
	}

	ctx := RequestContext{
		Method:  requestMethod(config),
		URL:     requestURL(config),
		Message: e.extractMessage(res),
	}
	if res != nil {
		ctx.Status = res.Status
	}
	if c, ok := failure.(coder); ok {
		ctx.Code = c.ErrorCode()
	}

	summary := e.formatSummary(ctx)
	message := err.Error()
	if summary != "" {
		message = summary + ": " + message
	}

	return &Error{
		message: message,
		summary: summary,
		cause:   err,
		transport: &Transport{
			RequestContext: ctx,
			Response:       res,
		},
	}
}

func requestMethod(config *RequestConfig) string {
	switch {
	case config.Method != "":
		return strings.ToUpper(config.Method)
	case config.Type != "":
		return strings.ToUpper(config.Type)
	default:
		return "GET"
	}
}

func requestURL(config *RequestConfig) string {
	if config.BaseURL != "" {
		return JoinURL(config.BaseURL, config.URL)
	}
	return config.URL
}

// JoinURL joins base and path with exactly one slash.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
