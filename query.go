package declient

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is a single query string entry. Value may be a string, any
// integer or float type, or a bool; it is stringified when the URL is built.
type QueryParam struct {
	Key   string
	Value any
}

// QueryParams is an ordered sequence of query parameters. Insertion order is
// the order parameters appear in the final URL, which keeps built URLs
// reproducible across calls and across Go versions (an ordinary map would
// not).
type QueryParams []QueryParam

// Add appends a parameter, keeping any existing entries with the same key.
func (q QueryParams) Add(key string, value any) QueryParams {
	return append(q, QueryParam{Key: key, Value: value})
}

// Set replaces the first entry with the given key, or appends when absent.
// Additional entries with the same key are left untouched.
func (q QueryParams) Set(key string, value any) QueryParams {
	for i := range q {
		if q[i].Key == key {
			q[i].Value = value
			return q
		}
	}
	return append(q, QueryParam{Key: key, Value: value})
}

// Get returns the first value for key and whether it was present.
func (q QueryParams) Get(key string) (any, bool) {
	for i := range q {
		if q[i].Key == key {
			return q[i].Value, true
		}
	}
	return nil, false
}

// Clone returns an independent copy of the sequence.
func (q QueryParams) Clone() QueryParams {
	if q == nil {
		return nil
	}
	out := make(QueryParams, len(q))
	copy(out, q)
	return out
}

// Encode renders the sequence as a percent-encoded query string without the
// leading "?". Entries appear in insertion order.
func (q QueryParams) Encode() string {
	if len(q) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(stringifyQueryValue(p.Value)))
	}
	return b.String()
}

func stringifyQueryValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
