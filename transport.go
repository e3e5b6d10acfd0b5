package declient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RoundTripper is the transport boundary: the sole network-facing interface.
// Any fetch-compatible implementation may be injected via WithTransport.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc adapts a function to the RoundTripper interface.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// dispatch builds the final URL, body and headers from a fully hook-processed
// Request, issues the call through the transport collaborator and decodes the
// response into a Result.
func (c *Client) dispatch(ctx context.Context, req *Request, prefix string) (*Result, error) {
	fullURL := buildURL(req.BaseURL, prefix, req.Path, req.QueryParameters)

	bodyReader, err := requestBody(req)
	if err != nil {
		return nil, err
	}

	callCtx := req.Context()
	if callCtx == nil {
		callCtx = ctx
		if callCtx == nil {
			callCtx = context.Background()
		}
		if req.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, req.Timeout)
			defer cancel()
		}
	}

	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, &ClientError{
			Type:      ErrorTypeValidation,
			Message:   "failed to construct HTTP request",
			Cause:     err,
			Method:    req.Method,
			URL:       fullURL,
			Timestamp: time.Now(),
		}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.transport.RoundTrip(httpReq)
	if err != nil {
		return nil, transportError(err, req.Method, fullURL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err, req.Method, fullURL)
	}

	decoded, err := decodeBody(req.Decoder, data)
	if err != nil {
		return nil, &ClientError{
			Type:      ErrorTypeDecode,
			Message:   "failed to decode response body",
			Cause:     err,
			Method:    req.Method,
			URL:       fullURL,
			Timestamp: time.Now(),
		}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Data:       decoded,
		Body:       data,
	}, nil
}

// buildURL joins baseURL + resource prefix + path and appends query
// parameters in insertion order.
func buildURL(baseURL, prefix, path string, params QueryParams) string {
	full := baseURL + prefix + path
	if qs := params.Encode(); qs != "" {
		sep := "?"
		if strings.Contains(full, "?") {
			sep = "&"
		}
		full += sep + qs
	}
	return full
}

// requestBody resolves the outgoing body. Passthrough kinds (raw text, byte
// buffers, streams and pre-encoded form data) are sent unencoded; anything
// else goes through the request's encoder.
func requestBody(req *Request) (io.Reader, error) {
	switch body := req.Body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(body), nil
	case []byte:
		return bytes.NewReader(body), nil
	case url.Values:
		return strings.NewReader(body.Encode()), nil
	case io.Reader:
		return body, nil
	default:
		enc := req.Encoder
		if enc == nil {
			enc = EncodeJSON
		}
		data, err := enc(body)
		if err != nil {
			return nil, &ClientError{
				Type:      ErrorTypeEncode,
				Message:   "failed to encode request body",
				Cause:     err,
				Method:    req.Method,
				Timestamp: time.Now(),
			}
		}
		return bytes.NewReader(data), nil
	}
}

func decodeBody(dec DecoderFunc, data []byte) (any, error) {
	if isDefaultDecoder(dec) {
		return DecodeJSON(data)
	}
	return dec(data)
}

// transportError classifies a transport-layer failure: context expiry
// surfaces as Canceled, everything else passes through as Transport with the
// original error reachable via Unwrap.
func transportError(err error, method, fullURL string) *ClientError {
	errorType := ErrorTypeTransport
	message := "transport request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		errorType = ErrorTypeCanceled
		message = "request deadline exceeded"
	} else if errors.Is(err, context.Canceled) {
		errorType = ErrorTypeCanceled
		message = "request canceled"
	}
	return &ClientError{
		Type:      errorType,
		Message:   message,
		Cause:     err,
		Method:    method,
		URL:       fullURL,
		Timestamp: time.Now(),
	}
}
