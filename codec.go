package declient

import (
	"encoding/json"
	"reflect"
)

// EncoderFunc turns a payload into wire bytes. Passthrough body kinds
// (string, []byte, io.Reader, url.Values) never reach the encoder.
type EncoderFunc func(payload any) ([]byte, error)

// DecoderFunc turns a response body into a decoded payload.
type DecoderFunc func(data []byte) (any, error)

// EncodeJSON is the default request encoder.
func EncodeJSON(payload any) ([]byte, error) {
	return json.Marshal(payload)
}

// DecodeJSON is the default response decoder.
func DecodeJSON(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// isDefaultEncoder reports whether enc is still the package default. The
// automatic Content-Type header and the JSON fast path in the transport
// invoker both key off this, so a hook-installed custom codec suppresses
// them.
func isDefaultEncoder(enc EncoderFunc) bool {
	if enc == nil {
		return true
	}
	return reflect.ValueOf(enc).Pointer() == reflect.ValueOf(EncoderFunc(EncodeJSON)).Pointer()
}

func isDefaultDecoder(dec DecoderFunc) bool {
	if dec == nil {
		return true
	}
	return reflect.ValueOf(dec).Pointer() == reflect.ValueOf(DecoderFunc(DecodeJSON)).Pointer()
}
