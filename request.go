package declient

import (
	"context"
	"time"
)

// Request represents one pending call. It is created fresh per invocation
// from the decoded route and the merged configuration layers, handed through
// the before-request hook chain, and consumed exactly once by the transport
// invoker.
//
// Two mutation styles are deliberately distinct: the Set*/Add* mutators
// change the receiver in place (for hook authors building a request
// imperatively inside a single hook), while Merge never touches the receiver
// and returns a new value.
type Request struct {
	Method          string
	Path            string
	BaseURL         string
	Headers         map[string]string
	QueryParameters QueryParams
	Body            any
	Encoder         EncoderFunc
	Decoder         DecoderFunc
	Timeout         time.Duration
	Hooks           []Hook

	ctx context.Context
}

// NewRequest returns an empty Request with the default JSON codec pair.
func NewRequest() *Request {
	return &Request{
		Headers: map[string]string{},
		Encoder: EncodeJSON,
		Decoder: DecodeJSON,
	}
}

// AddHeaders merges the given headers into the request, overwriting existing
// entries on key collision. Header keys compare case-sensitively here; see
// the package documentation for the rationale behind this quirk.
func (r *Request) AddHeaders(headers map[string]string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string, len(headers))
	}
	for k, v := range headers {
		r.Headers[k] = v
	}
	return r
}

// SetHeaders replaces the header map wholesale.
func (r *Request) SetHeaders(headers map[string]string) *Request {
	r.Headers = headers
	return r
}

// AddQueryParameters appends parameters, preserving insertion order.
func (r *Request) AddQueryParameters(params ...QueryParam) *Request {
	r.QueryParameters = append(r.QueryParameters, params...)
	return r
}

// SetQueryParameters replaces the parameter sequence wholesale.
func (r *Request) SetQueryParameters(params QueryParams) *Request {
	r.QueryParameters = params
	return r
}

// SetBody sets the request payload. Strings, byte slices, io.Readers and
// url.Values are sent as-is; anything else goes through the encoder.
func (r *Request) SetBody(body any) *Request {
	r.Body = body
	return r
}

// SetEncoder installs a custom payload encoder. Installing anything other
// than EncodeJSON also disables the automatic Content-Type header.
func (r *Request) SetEncoder(enc EncoderFunc) *Request {
	r.Encoder = enc
	return r
}

// SetDecoder installs a custom response decoder.
func (r *Request) SetDecoder(dec DecoderFunc) *Request {
	r.Decoder = dec
	return r
}

// SetPath sets the request path relative to BaseURL plus resource prefix.
func (r *Request) SetPath(path string) *Request {
	r.Path = path
	return r
}

// SetMethod sets the HTTP method.
func (r *Request) SetMethod(method string) *Request {
	r.Method = method
	return r
}

// SetBaseURL sets the base URL.
func (r *Request) SetBaseURL(baseURL string) *Request {
	r.BaseURL = baseURL
	return r
}

// SetTimeout sets the per-call timeout. Ignored when an explicit context is
// set via SetContext.
func (r *Request) SetTimeout(d time.Duration) *Request {
	r.Timeout = d
	return r
}

// SetContext installs an explicit cancellation context used as-is by the
// transport invoker, bypassing timeout synthesis.
func (r *Request) SetContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Context returns the explicit cancellation context, or nil when none is set.
func (r *Request) Context() context.Context {
	return r.ctx
}

// Clone returns an independent copy of the request. Header and parameter
// containers are copied; Body, Encoder and Decoder are shared by reference.
func (r *Request) Clone() *Request {
	out := *r
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	out.QueryParameters = r.QueryParameters.Clone()
	if r.Hooks != nil {
		out.Hooks = make([]Hook, len(r.Hooks))
		copy(out.Hooks, r.Hooks)
	}
	return &out
}

// Merge returns a NEW request combining the receiver with partial. Headers
// and Hooks union (partial's entries extend and, for headers, override the
// receiver's); every other field present in partial replaces the receiver's
// value wholesale. The receiver is never modified.
func (r *Request) Merge(partial *Request) *Request {
	out := r.Clone()
	if partial == nil {
		return out
	}
	if len(partial.Headers) > 0 {
		out.AddHeaders(partial.Headers)
	}
	if len(partial.Hooks) > 0 {
		out.Hooks = concatHooks(out.Hooks, partial.Hooks)
	}
	if partial.Method != "" {
		out.Method = partial.Method
	}
	if partial.Path != "" {
		out.Path = partial.Path
	}
	if partial.BaseURL != "" {
		out.BaseURL = partial.BaseURL
	}
	if partial.QueryParameters != nil {
		out.QueryParameters = partial.QueryParameters.Clone()
	}
	if partial.Body != nil {
		out.Body = partial.Body
	}
	if partial.Encoder != nil {
		out.Encoder = partial.Encoder
	}
	if partial.Decoder != nil {
		out.Decoder = partial.Decoder
	}
	if partial.Timeout != 0 {
		out.Timeout = partial.Timeout
	}
	if partial.ctx != nil {
		out.ctx = partial.ctx
	}
	return out
}
