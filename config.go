package declient

import "time"

// ResourceConfig declares one API resource: an optional path prefix, scoped
// defaults, and the routes it exposes. Routes map a route name to the
// constructor invoked with the call arguments.
type ResourceConfig struct {
	Prefix  string
	Headers map[string]string
	Hooks   []Hook
	Timeout time.Duration
	Routes  map[string]RouteFunc
}

// mergeHeaders shallow-merges header maps in layer order, later layers
// overwriting earlier ones on key collision. Keys compare case-sensitively:
// HTTP header names are nominally case-insensitive, but changing the
// comparison would silently alter override semantics, so the quirk is kept
// and documented rather than fixed.
func mergeHeaders(layers ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// effectiveTimeout returns the first non-zero duration, checked from the
// most specific layer to the least.
func effectiveTimeout(layers ...time.Duration) time.Duration {
	for _, d := range layers {
		if d != 0 {
			return d
		}
	}
	return 0
}
