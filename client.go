package declient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client binds a configuration of resources and routes into callable
// methods. It owns no per-call state: every invocation constructs its own
// Request and Result values, so a Client is safe for concurrent use.
type Client struct {
	baseURL   string
	headers   map[string]string
	hooks     []Hook
	timeout   time.Duration
	encoder   EncoderFunc
	decoder   DecoderFunc
	transport RoundTripper
	resources map[string]ResourceConfig

	metrics *MetricsCollector
	debug   *DebugConfig
	logger  Logger

	validationError error
}

// CallFunc is the public callable surface bound to one route.
type CallFunc func(ctx context.Context, args ...any) (*Result, error)

// New constructs a Client from the provided functional options. Configuration
// is captured once here and treated as immutable afterwards; a best effort
// validation is performed, surfaced via IsValid / ValidationError.
func New(options ...Option) *Client {
	client := &Client{
		headers:   map[string]string{},
		hooks:     nil,
		encoder:   EncodeJSON,
		decoder:   DecodeJSON,
		transport: RoundTripperFunc((&http.Client{}).Do),
		resources: map[string]ResourceConfig{},
		debug:     DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// Resource returns a handle to a configured resource. The handle is valid
// even for unknown names; calls through it fail with a Validation error.
func (c *Client) Resource(name string) *Resource {
	return &Resource{client: c, name: name}
}

// Call invokes the named route of the named resource with the given
// constructor arguments.
func (c *Client) Call(ctx context.Context, resource, route string, args ...any) (*Result, error) {
	return c.invoke(ctx, resource, route, args)
}

// Resource is a bound view over one configured resource.
type Resource struct {
	client *Client
	name   string
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Call invokes the named route with the given constructor arguments.
func (r *Resource) Call(ctx context.Context, route string, args ...any) (*Result, error) {
	return r.client.invoke(ctx, r.name, route, args)
}

// Bind returns a reusable callable for one route.
func (r *Resource) Bind(route string) CallFunc {
	return func(ctx context.Context, args ...any) (*Result, error) {
		return r.client.invoke(ctx, r.name, route, args)
	}
}

func (c *Client) invoke(ctx context.Context, resourceName, routeName string, args []any) (*Result, error) {
	start := time.Now()

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	cfg, ok := c.resources[resourceName]
	if !ok {
		return nil, c.callError(ErrorTypeValidation, fmt.Sprintf("unknown resource %q", resourceName), nil, requestID, resourceName, routeName)
	}
	routeFn, ok := cfg.Routes[routeName]
	if !ok {
		return nil, c.callError(ErrorTypeValidation, fmt.Sprintf("unknown route %q on resource %q", routeName, resourceName), nil, requestID, resourceName, routeName)
	}

	endpoint, opts, err := decodeDescriptor(routeFn(args...))
	if err != nil {
		c.metrics.RecordError(errorType(err), resourceName, routeName)
		return nil, err
	}

	req := c.buildRequest(endpoint, cfg, opts)

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting request", "requestID", requestID, "resource", resourceName, "route", routeName, "method", req.Method, "path", req.Path)
	}

	c.metrics.RecordRequestStart(resourceName, routeName)
	defer c.metrics.RecordRequestEnd(resourceName, routeName)

	// The concatenated hook list is fixed here: both phases fold over the
	// same sequence even when a before hook replaces the working request.
	hooks := req.Hooks

	req, err = c.runBeforeHooks(hooks, req, requestID)
	if err != nil {
		c.metrics.RecordError(errorType(err), resourceName, routeName)
		return nil, err
	}

	c.applyDefaultContentType(req)

	result, err := c.dispatch(ctx, req, cfg.Prefix)
	if err != nil {
		if IsDecodeError(err) {
			c.metrics.RecordDecodeError(resourceName, routeName)
		}
		c.metrics.RecordError(errorType(err), resourceName, routeName)
		c.logFailure(requestID, resourceName, routeName, err)
		return nil, err
	}

	result, err = c.runAfterHooks(hooks, req, result, requestID)
	if err != nil {
		c.metrics.RecordError(errorType(err), resourceName, routeName)
		return nil, err
	}

	c.metrics.RecordRequest(req.Method, resourceName, routeName, result.StatusCode, time.Since(start))

	if c.debug != nil && c.debug.Enabled && c.debug.LogResponses && c.logger != nil {
		c.logger.Debug("Completed request", "requestID", requestID, "resource", resourceName, "route", routeName, "statusCode", result.StatusCode, "duration", time.Since(start))
	}

	return result, nil
}

// buildRequest merges the configuration layers into the initial Request.
// Precedence: client defaults, then resource config, then structured route
// descriptor values; headers merge by union, hooks concatenate, everything
// else replaces.
func (c *Client) buildRequest(endpoint Endpoint, cfg ResourceConfig, opts *RouteOptions) *Request {
	req := NewRequest()
	req.Method = endpoint.Method
	req.Path = endpoint.Path
	req.BaseURL = c.baseURL
	req.Encoder = c.encoder
	req.Decoder = c.decoder

	if opts == nil {
		req.Headers = mergeHeaders(c.headers, cfg.Headers)
		req.Timeout = effectiveTimeout(cfg.Timeout, c.timeout)
		req.Hooks = concatHooks(c.hooks, cfg.Hooks)
		return req
	}

	req.Headers = mergeHeaders(c.headers, cfg.Headers, opts.Headers)
	req.Timeout = effectiveTimeout(opts.Timeout, cfg.Timeout, c.timeout)
	req.Hooks = concatHooks(c.hooks, cfg.Hooks, opts.Hooks)
	req.Body = opts.Body
	req.QueryParameters = opts.QueryParameters.Clone()
	if opts.Encoder != nil {
		req.Encoder = opts.Encoder
	}
	if opts.Decoder != nil {
		req.Decoder = opts.Decoder
	}
	return req
}

// applyDefaultContentType injects Content-Type: application/json if and only
// if the encoder is still the default JSON encoder and no layer or hook set a
// Content-Type already. It must run after the before-request chain so that a
// hook-installed custom encoder suppresses it. The presence check is
// case-insensitive even though merging is not: net/http canonicalizes header
// names on the wire, so a lowercase "content-type" set by a layer would
// otherwise be sent twice.
func (c *Client) applyDefaultContentType(req *Request) {
	if !isDefaultEncoder(req.Encoder) {
		return
	}
	for k := range req.Headers {
		if strings.EqualFold(k, "Content-Type") {
			return
		}
	}
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	req.Headers["Content-Type"] = "application/json"
}

func (c *Client) runBeforeHooks(hooks []Hook, req *Request, requestID string) (*Request, error) {
	for i, hook := range hooks {
		if hook.BeforeRequest == nil {
			continue
		}
		label := hookLabel(hook, i)
		hookStart := time.Now()
		next, err := hook.BeforeRequest(req)
		c.metrics.RecordHook(label, "before", time.Since(hookStart))
		if err != nil {
			return nil, &ClientError{
				Type:      ErrorTypeHook,
				Message:   fmt.Sprintf("before-request hook %s failed", label),
				Cause:     err,
				RequestID: requestID,
				Timestamp: time.Now(),
			}
		}
		if next != nil {
			req = next
		}
		if c.debug != nil && c.debug.Enabled && c.debug.LogHooks && c.logger != nil {
			c.logger.Debug("Before hook applied", "requestID", requestID, "hook", label)
		}
	}
	return req, nil
}

func (c *Client) runAfterHooks(hooks []Hook, req *Request, result *Result, requestID string) (*Result, error) {
	for i, hook := range hooks {
		if hook.AfterRequest == nil {
			continue
		}
		label := hookLabel(hook, i)
		hookStart := time.Now()
		next, err := hook.AfterRequest(req, result)
		c.metrics.RecordHook(label, "after", time.Since(hookStart))
		if err != nil {
			return nil, &ClientError{
				Type:      ErrorTypeHook,
				Message:   fmt.Sprintf("after-request hook %s failed", label),
				Cause:     err,
				RequestID: requestID,
				Timestamp: time.Now(),
			}
		}
		if next != nil {
			result = next
		}
		if c.debug != nil && c.debug.Enabled && c.debug.LogHooks && c.logger != nil {
			c.logger.Debug("After hook applied", "requestID", requestID, "hook", label)
		}
	}
	return result, nil
}

func (c *Client) logFailure(requestID, resourceName, routeName string, err error) {
	if c.debug != nil && c.debug.Enabled && c.logger != nil {
		c.logger.Warn("Request failed", "requestID", requestID, "resource", resourceName, "route", routeName, "error", err.Error())
	}
}

func (c *Client) callError(errType, message string, cause error, requestID, resourceName, routeName string) *ClientError {
	return &ClientError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		RequestID: requestID,
		Resource:  resourceName,
		Route:     routeName,
		Timestamp: time.Now(),
	}
}

func errorType(err error) string {
	if clientErr, ok := err.(*ClientError); ok {
		return clientErr.Type
	}
	return "Unknown"
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}
