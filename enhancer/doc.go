// Package enhancer turns failed HTTP calls into structured, human-readable errors.
//
// A transport reports a failure by returning an error that implements Failure
// (or a *RequestError). Enhance derives the request context from it (method,
// URL, status, server message and transport code) and returns an *Error whose
// message leads with a one-line summary:
//
//	[400] POST http://api.local/orders (invalid request): Request failed with status code 400
//
// The original error stays reachable through Unwrap, and the derived context is
// available through Info for structured logging.
//
// Errors that carry no request configuration are not HTTP-shaped and are
// returned unchanged.
//
// # Customization
//
// Configure binds a new Enhancer to a message extractor and a summary
// formatter. Omitted functions fall back to DefaultExtractMessage and
// DefaultFormatSummary:
//
//	enh := enhancer.Configure(&enhancer.Options{
//	    ExtractMessage: enhancer.FieldExtractor("detail", "errors.0.message"),
//	})
//	if err != nil {
//	    return enh.Enhance(err)
//	}
package enhancer
