package declient

import (
	"strings"
	"time"
)

// Endpoint is a normalized {method, path} pair produced by route decoding.
type Endpoint struct {
	Method string
	Path   string
}

// Descriptor is a route descriptor returned by a RouteFunc: either a bare
// Path string (method defaults to GET unless the string carries a verb
// prefix) or a structured *RouteOptions. The two forms are dispatched
// exhaustively at decode time.
type Descriptor interface {
	descriptor()
}

// Path is the bare string form of a route descriptor, e.g. "/users/1" or
// "POST /users".
type Path string

func (Path) descriptor() {}

// RouteOptions is the structured form of a route descriptor. Route is
// required; every other field is optional and, when set, takes final
// precedence over resource and client defaults (Headers by union, the rest
// by replacement).
type RouteOptions struct {
	Method          string
	Route           string
	Headers         map[string]string
	Timeout         time.Duration
	Body            any
	QueryParameters QueryParams
	Hooks           []Hook
	Encoder         EncoderFunc
	Decoder         DecoderFunc
}

func (*RouteOptions) descriptor() {}

// RouteFunc builds a route descriptor from call arguments. It is the
// "constructor" bound to a route name in a ResourceConfig.
type RouteFunc func(args ...any) Descriptor

// Route is a convenience RouteFunc for fixed routes that take no arguments.
func Route(route string) RouteFunc {
	return func(...any) Descriptor { return Path(route) }
}

var supportedMethods = map[string]struct{}{
	"GET":    {},
	"POST":   {},
	"PUT":    {},
	"DELETE": {},
	"PATCH":  {},
}

// DecodeRoute normalizes a route string into an Endpoint. When method is
// empty and the string contains no space the method defaults to GET.
// Otherwise the text before the first space is interpreted as the verb,
// case-insensitively; anything outside GET/POST/PUT/DELETE/PATCH fails with
// an InvalidMethod error carrying the offending token and the full route.
// An explicit non-empty method skips verb extraction entirely.
func DecodeRoute(method, route string) (Endpoint, error) {
	if method != "" {
		return Endpoint{Method: strings.ToUpper(method), Path: route}, nil
	}
	idx := strings.Index(route, " ")
	if idx < 0 {
		return Endpoint{Method: "GET", Path: route}, nil
	}
	token := route[:idx]
	path := route[idx+1:]
	upper := strings.ToUpper(token)
	if _, ok := supportedMethods[upper]; !ok {
		return Endpoint{}, invalidMethodError(token, route)
	}
	return Endpoint{Method: upper, Path: path}, nil
}

// invalidDescriptor lets route constructors surface an error at decode time;
// RouteFunc itself has no error return.
type invalidDescriptor struct{ err error }

func (invalidDescriptor) descriptor() {}

func decodeDescriptor(desc Descriptor) (Endpoint, *RouteOptions, error) {
	switch d := desc.(type) {
	case Path:
		endpoint, err := DecodeRoute("", string(d))
		return endpoint, nil, err
	case *RouteOptions:
		endpoint, err := DecodeRoute(d.Method, d.Route)
		return endpoint, d, err
	case invalidDescriptor:
		return Endpoint{}, nil, &ClientError{
			Type:    ErrorTypeValidation,
			Message: "route constructor rejected its arguments",
			Cause:   d.err,
		}
	default:
		return Endpoint{}, nil, &ClientError{
			Type:    ErrorTypeValidation,
			Message: "route constructor returned an unknown descriptor type",
		}
	}
}
