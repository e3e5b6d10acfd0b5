package declient

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://api.example.com/users/1",
		buildURL("https://api.example.com", "/users", "/1", nil))
	assert.Equal(t, "https://api.example.com/users?page=1",
		buildURL("https://api.example.com", "", "/users", QueryParams{}.Add("page", 1)))
	// Path already carrying a query string gets appended with &.
	assert.Equal(t, "https://api.example.com/users?a=1&b=2",
		buildURL("https://api.example.com", "", "/users?a=1", QueryParams{}.Add("b", 2)))
}

func TestRequestBody_passthrough_kinds(t *testing.T) {
	t.Parallel()

	read := func(t *testing.T, body any) string {
		t.Helper()
		reader, err := requestBody(NewRequest().SetBody(body))
		require.NoError(t, err)
		if reader == nil {
			return ""
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(reader)
		require.NoError(t, err)
		return buf.String()
	}

	assert.Equal(t, "", read(t, nil))
	assert.Equal(t, "raw text", read(t, "raw text"))
	assert.Equal(t, "raw bytes", read(t, []byte("raw bytes")))
	assert.Equal(t, "stream", read(t, strings.NewReader("stream")))

	form := url.Values{}
	form.Set("a", "1")
	form.Set("b", "two words")
	assert.Equal(t, form.Encode(), read(t, form))

	// Anything else goes through the encoder.
	assert.JSONEq(t, `{"name":"a"}`, read(t, map[string]string{"name": "a"}))
}

func TestRequestBody_custom_encoder(t *testing.T) {
	t.Parallel()

	req := NewRequest().
		SetEncoder(func(payload any) ([]byte, error) {
			return []byte(base64.StdEncoding.EncodeToString([]byte(payload.(stringerPayload)))), nil
		}).
		SetBody(stringerPayload("hello"))

	reader, err := requestBody(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(reader)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), buf.String())
}

type stringerPayload string

func TestRequestBody_encoder_failure(t *testing.T) {
	t.Parallel()

	// Channels are not JSON-serializable.
	_, err := requestBody(NewRequest().SetBody(make(chan int)))
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrorTypeEncode, clientErr.Type)
}

func stubTransport(fn func(*http.Request) (*http.Response, error)) Option {
	return WithTransport(RoundTripperFunc(fn))
}

func newStubClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	return New(
		WithBaseURL("https://api.example.com"),
		stubTransport(func(req *http.Request) (*http.Response, error) {
			resp := &http.Response{
				StatusCode: status,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       http.NoBody,
			}
			if body != "" {
				resp.Body = newReadCloser(body)
			}
			return resp, nil
		}),
		WithResource("things", ResourceConfig{
			Routes: map[string]RouteFunc{"get": Route("/things")},
		}),
	)
}

func newReadCloser(s string) *readCloser {
	return &readCloser{Reader: strings.NewReader(s)}
}

type readCloser struct {
	*strings.Reader
	closed bool
}

func (r *readCloser) Close() error {
	r.closed = true
	return nil
}

func TestDispatch_decodes_json_by_default(t *testing.T) {
	t.Parallel()

	client := newStubClient(t, 200, `{"n":1}`)
	res, err := client.Call(context.Background(), "things", "get")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": float64(1)}, res.Data)
	assert.Equal(t, []byte(`{"n":1}`), res.Body)
}

func TestDispatch_empty_body_decodes_to_nil(t *testing.T) {
	t.Parallel()

	client := newStubClient(t, 204, "")
	res, err := client.Call(context.Background(), "things", "get")
	require.NoError(t, err)
	assert.Equal(t, 204, res.StatusCode)
	assert.Nil(t, res.Data)
}

func TestDispatch_decode_error(t *testing.T) {
	t.Parallel()

	client := newStubClient(t, 200, "not json")
	_, err := client.Call(context.Background(), "things", "get")
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestDispatch_custom_decoder_receives_raw_text(t *testing.T) {
	t.Parallel()

	client := New(
		WithBaseURL("https://api.example.com"),
		WithDecoder(func(data []byte) (any, error) {
			return strings.ToUpper(string(data)), nil
		}),
		stubTransport(func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: 200, Header: http.Header{}, Body: newReadCloser("plain text")}, nil
		}),
		WithResource("things", ResourceConfig{
			Routes: map[string]RouteFunc{"get": Route("/things")},
		}),
	)

	res, err := client.Call(context.Background(), "things", "get")
	require.NoError(t, err)
	assert.Equal(t, "PLAIN TEXT", res.Data)
}

func TestDispatch_transport_error_passes_through(t *testing.T) {
	t.Parallel()

	cause := &url.Error{Op: "Get", URL: "https://api.example.com/things", Err: assert.AnError}
	client := New(
		WithBaseURL("https://api.example.com"),
		stubTransport(func(req *http.Request) (*http.Response, error) {
			return nil, cause
		}),
		WithResource("things", ResourceConfig{
			Routes: map[string]RouteFunc{"get": Route("/things")},
		}),
	)

	_, err := client.Call(context.Background(), "things", "get")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	require.ErrorIs(t, err, assert.AnError)
}

func TestDispatch_explicit_context_used_as_is(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(
		WithBaseURL("https://api.example.com"),
		WithHooks(Hook{
			Name: "abort",
			BeforeRequest: func(req *Request) (*Request, error) {
				return req.SetContext(ctx), nil
			},
		}),
		stubTransport(func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		}),
		WithResource("things", ResourceConfig{
			Routes: map[string]RouteFunc{"get": Route("/things")},
		}),
	)

	_, err := client.Call(context.Background(), "things", "get")
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
}

func TestDispatch_timeout_synthesizes_deadline(t *testing.T) {
	t.Parallel()

	client := New(
		WithBaseURL("https://api.example.com"),
		WithTimeout(20*time.Millisecond),
		stubTransport(func(req *http.Request) (*http.Response, error) {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(time.Second):
				return &http.Response{StatusCode: 200, Header: http.Header{}, Body: http.NoBody}, nil
			}
		}),
		WithResource("things", ResourceConfig{
			Routes: map[string]RouteFunc{"get": Route("/things")},
		}),
	)

	start := time.Now()
	_, err := client.Call(context.Background(), "things", "get")
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDispatch_no_timeout_no_deadline(t *testing.T) {
	t.Parallel()

	var sawDeadline bool
	client := New(
		WithBaseURL("https://api.example.com"),
		stubTransport(func(req *http.Request) (*http.Response, error) {
			_, sawDeadline = req.Context().Deadline()
			return &http.Response{StatusCode: 200, Header: http.Header{}, Body: http.NoBody}, nil
		}),
		WithResource("things", ResourceConfig{
			Routes: map[string]RouteFunc{"get": Route("/things")},
		}),
	)

	_, err := client.Call(context.Background(), "things", "get")
	require.NoError(t, err)
	assert.False(t, sawDeadline)
}

func TestDispatch_auto_content_type_rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{
			name: "default encoder sets json",
			want: "application/json",
		},
		{
			name: "existing header wins",
			options: []Option{
				WithHeader("Content-Type", "application/vnd.custom+json"),
			},
			want: "application/vnd.custom+json",
		},
		{
			name: "custom encoder suppresses auto header",
			options: []Option{
				WithEncoder(func(payload any) ([]byte, error) { return []byte("x"), nil }),
			},
			want: "",
		},
		{
			name: "hook-installed encoder suppresses auto header",
			options: []Option{
				WithHooks(Hook{
					Name: "codec",
					BeforeRequest: func(req *Request) (*Request, error) {
						return req.SetEncoder(func(payload any) ([]byte, error) { return []byte("x"), nil }), nil
					},
				}),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var captured http.Header
			options := append([]Option{
				WithBaseURL("https://api.example.com"),
				stubTransport(func(req *http.Request) (*http.Response, error) {
					captured = req.Header.Clone()
					return &http.Response{StatusCode: 200, Header: http.Header{}, Body: http.NoBody}, nil
				}),
				WithResource("things", ResourceConfig{
					Routes: map[string]RouteFunc{
						"create": func(...any) Descriptor {
							return &RouteOptions{Route: "POST /things", Body: map[string]string{"k": "v"}}
						},
					},
				}),
			}, tt.options...)

			_, err := New(options...).Call(context.Background(), "things", "create")
			require.NoError(t, err)
			assert.Equal(t, tt.want, captured.Get("Content-Type"))
		})
	}
}
