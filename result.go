package declient

import (
	"encoding/json"
	"net/http"
)

// Result represents a completed call: the response status, headers and the
// decoded payload. It is created once after response decoding and then folded
// through the after-request hook chain; the chain's final Result is what the
// caller receives.
type Result struct {
	StatusCode int
	Headers    http.Header
	Data       any

	// Body is the raw response body. It backs As for typed decoding and is
	// retained even when a custom decoder produced Data.
	Body []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Clone returns an independent copy of the result. Data is shared by
// reference; headers and body are copied.
func (r *Result) Clone() *Result {
	out := *r
	if r.Headers != nil {
		out.Headers = r.Headers.Clone()
	}
	if r.Body != nil {
		out.Body = make([]byte, len(r.Body))
		copy(out.Body, r.Body)
	}
	return &out
}

// Merge returns a NEW result combining the receiver with partial: headers
// union (partial overrides on collision), other fields replace when present.
// The receiver is never modified.
func (r *Result) Merge(partial *Result) *Result {
	out := r.Clone()
	if partial == nil {
		return out
	}
	if len(partial.Headers) > 0 {
		if out.Headers == nil {
			out.Headers = http.Header{}
		}
		for k, vs := range partial.Headers {
			out.Headers[k] = vs
		}
	}
	if partial.StatusCode != 0 {
		out.StatusCode = partial.StatusCode
	}
	if partial.Data != nil {
		out.Data = partial.Data
	}
	if partial.Body != nil {
		out.Body = make([]byte, len(partial.Body))
		copy(out.Body, partial.Body)
	}
	return out
}

// As decodes the result payload into T. When Data already holds a T (for
// example a custom decoder returned a concrete type) it is returned
// directly; otherwise the raw body is unmarshaled as JSON into T.
func As[T any](res *Result) (T, error) {
	var out T
	if res == nil {
		return out, &ClientError{Type: ErrorTypeDecode, Message: "nil result"}
	}
	if typed, ok := res.Data.(T); ok {
		return typed, nil
	}
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return out, &ClientError{
			Type:    ErrorTypeDecode,
			Message: "failed to decode result into target type",
			Cause:   err,
		}
	}
	return out, nil
}
