package enhancer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultFormatSummary renders "[status] METHOD url (message)". The status
// segment is dropped when Status is 0 and the message segment when Message is
// empty.
func DefaultFormatSummary(ctx RequestContext) string {
	var b strings.Builder
	if ctx.Status != 0 {
		fmt.Fprintf(&b, "[%d] ", ctx.Status)
	}
	b.WriteString(ctx.Method)
	b.WriteString(" ")
	b.WriteString(ctx.URL)
	if ctx.Message != "" {
		fmt.Fprintf(&b, " (%s)", ctx.Message)
	}
	return b.String()
}

// DefaultExtractMessage returns data.message, falling back to
// data.error.message.
func DefaultExtractMessage(res *Response) string {
	return defaultExtractor(res)
}

var defaultExtractor = FieldExtractor("message", "error.message")

// FieldExtractor returns an extractor that walks each dotted path through the
// response data and returns the first non-empty scalar found. Numbers and
// booleans are rendered in their plain text form. Numeric segments
// index into arrays, so "errors.0.message" reads the first entry of an errors
// list.
func FieldExtractor(paths ...string) MessageExtractor {
	split := make([][]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			split = append(split, strings.Split(p, "."))
		}
	}

	return func(res *Response) string {
		if res == nil {
			return ""
		}
		for _, segments := range split {
			if s := scalarText(lookup(res.Data, segments)); s != "" {
				return s
			}
		}
		return ""
	}
}

// ChainExtractors returns an extractor that tries each extractor in order and
// returns the first non-empty message.
func ChainExtractors(extractors ...MessageExtractor) MessageExtractor {
	return func(res *Response) string {
		for _, extract := range extractors {
			if extract == nil {
				continue
			}
			if msg := extract(res); msg != "" {
				return msg
			}
		}
		return ""
	}
}

func scalarText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case json.Number, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s)
	default:
		return ""
	}
}

func lookup(v any, segments []string) any {
	for _, seg := range segments {
		switch node := v.(type) {
		case map[string]any:
			v = node[seg]
		case map[string]string:
			v = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			v = node[i]
		default:
			return nil
		}
	}
	return v
}
