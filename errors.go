package declient

import (
	"errors"
	"fmt"
	"time"
)

// Error type constants used in ClientError.Type.
const (
	ErrorTypeValidation    = "Validation"
	ErrorTypeInvalidMethod = "InvalidMethod"
	ErrorTypeEncode        = "Encode"
	ErrorTypeDecode        = "Decode"
	ErrorTypeTransport     = "Transport"
	ErrorTypeCanceled      = "Canceled"
	ErrorTypeHook          = "Hook"
)

// ClientError represents a failure produced while building, dispatching or
// decoding a request. Type identifies the failure class; Cause carries the
// underlying error when one exists.
type ClientError struct {
	Type      string
	Message   string
	Cause     error
	RequestID string
	Method    string
	URL       string
	Resource  string
	Route     string

	// Token and RouteString are populated for InvalidMethod errors: the
	// verb token that failed to decode and the full route descriptor it
	// was found in.
	Token       string
	RouteString string

	Timestamp time.Time
	Duration  time.Duration
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Resource != "" {
		info += fmt.Sprintf("Resource: %s\n", e.Resource)
	}
	if e.Route != "" {
		info += fmt.Sprintf("Route: %s\n", e.Route)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.Token != "" {
		info += fmt.Sprintf("Token: %s\n", e.Token)
	}
	if e.RouteString != "" {
		info += fmt.Sprintf("Route String: %s\n", e.RouteString)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsInvalidMethod reports whether err is an InvalidMethod route decoding error.
func IsInvalidMethod(err error) bool {
	return isErrorType(err, ErrorTypeInvalidMethod)
}

// IsDecodeError reports whether err is a response decoding failure.
func IsDecodeError(err error) bool {
	return isErrorType(err, ErrorTypeDecode)
}

// IsCanceled reports whether err was caused by a timeout or an aborted
// context rather than a transport or protocol failure.
func IsCanceled(err error) bool {
	return isErrorType(err, ErrorTypeCanceled)
}

// IsTransportError reports whether err is a network/transport-layer failure
// passed through from the transport collaborator.
func IsTransportError(err error) bool {
	return isErrorType(err, ErrorTypeTransport)
}

func isErrorType(err error, errorType string) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == errorType
	}
	return false
}

func invalidMethodError(token, route string) *ClientError {
	return &ClientError{
		Type:        ErrorTypeInvalidMethod,
		Message:     fmt.Sprintf("unsupported HTTP method %q in route %q", token, route),
		Token:       token,
		RouteString: route,
		Timestamp:   time.Now(),
	}
}
