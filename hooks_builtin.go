package declient

import (
	"context"

	"golang.org/x/time/rate"
)

// LoggingHook returns a hook that logs every request before dispatch and
// every result after it.
func LoggingHook(logger Logger) Hook {
	return Hook{
		Name: "logging",
		BeforeRequest: func(req *Request) (*Request, error) {
			logger.Info("request", "method", req.Method, "path", req.Path, "query", req.QueryParameters.Encode())
			return req, nil
		},
		AfterRequest: func(req *Request, res *Result) (*Result, error) {
			logger.Info("response", "method", req.Method, "path", req.Path, "statusCode", res.StatusCode)
			return res, nil
		},
	}
}

// AuthorizationHook returns a hook that injects an Authorization header,
// e.g. AuthorizationHook("Bearer", token). Header-injection is the only
// authentication mechanism the client provides.
func AuthorizationHook(scheme, credentials string) Hook {
	return Hook{
		Name: "authorization",
		BeforeRequest: func(req *Request) (*Request, error) {
			return req.AddHeaders(map[string]string{"Authorization": scheme + " " + credentials}), nil
		},
	}
}

// UserAgentHook returns a hook that sets the User-Agent header unless a more
// specific layer already did.
func UserAgentHook(userAgent string) Hook {
	return Hook{
		Name: "user-agent",
		BeforeRequest: func(req *Request) (*Request, error) {
			if _, ok := req.Headers["User-Agent"]; !ok {
				req.AddHeaders(map[string]string{"User-Agent": userAgent})
			}
			return req, nil
		},
	}
}

// RateLimitHook returns a hook that blocks until the shared limiter grants a
// slot. The request's explicit context bounds the wait when one is set;
// otherwise the wait is unbounded.
func RateLimitHook(limiter *rate.Limiter) Hook {
	return Hook{
		Name: "rate-limit",
		BeforeRequest: func(req *Request) (*Request, error) {
			ctx := req.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return req, nil
		},
	}
}
