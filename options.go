package declient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Option represents a configuration option applied at construction.
type Option func(*Client)

// WithBaseURL sets the base URL prepended to every route path.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHeaders merges default headers applied to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithHeader sets a single default header.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHooks appends client-level hooks. These run first in both phases,
// before resource and per-request hooks.
func WithHooks(hooks ...Hook) Option {
	return func(c *Client) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// WithTimeout sets the default per-call timeout. Resource and route level
// timeouts override it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithEncoder replaces the default JSON request encoder. Installing a custom
// encoder disables the automatic Content-Type header.
func WithEncoder(enc EncoderFunc) Option {
	return func(c *Client) {
		c.encoder = enc
	}
}

// WithDecoder replaces the default JSON response decoder.
func WithDecoder(dec DecoderFunc) Option {
	return func(c *Client) {
		c.decoder = dec
	}
}

// WithTransport injects a custom transport collaborator.
func WithTransport(rt RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithHTTPClient uses the given net/http client as the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.transport = RoundTripperFunc(client.Do)
	}
}

// WithResource registers a resource and its routes under the given name.
func WithResource(name string, cfg ResourceConfig) Option {
	return func(c *Client) {
		c.resources[name] = cfg
	}
}

// WithMetrics enables Prometheus metrics collection on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables debug logging with default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithSimpleLogger enables debug logging with a simple console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an
// error if invalid.
func (c *Client) ValidateConfiguration() error {
	var errs []string

	errs = append(errs, c.validateBaseURL()...)
	errs = append(errs, c.validateTimeout()...)
	errs = append(errs, c.validateTransport()...)
	errs = append(errs, c.validateResources()...)
	errs = append(errs, c.validateHooks()...)
	errs = append(errs, c.validateDebugConfig()...)

	if len(errs) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errs),
		}
	}

	return nil
}

func (c *Client) validateBaseURL() []string {
	var errs []string

	if c.baseURL != "" {
		if _, err := url.Parse(c.baseURL); err != nil {
			errs = append(errs, fmt.Sprintf("baseURL is not a valid URL: %v", err))
		}
	}

	return errs
}

func (c *Client) validateTimeout() []string {
	var errs []string

	if c.timeout < 0 {
		errs = append(errs, "timeout must be non-negative")
	}
	for name, cfg := range c.resources {
		if cfg.Timeout < 0 {
			errs = append(errs, fmt.Sprintf("resource %q: timeout must be non-negative", name))
		}
	}

	return errs
}

func (c *Client) validateTransport() []string {
	var errs []string

	if c.transport == nil {
		errs = append(errs, "transport cannot be nil")
	}

	return errs
}

func (c *Client) validateResources() []string {
	var errs []string

	for name, cfg := range c.resources {
		if name == "" {
			errs = append(errs, "resource name cannot be empty")
		}
		for routeName, routeFn := range cfg.Routes {
			if routeName == "" {
				errs = append(errs, fmt.Sprintf("resource %q: route name cannot be empty", name))
			}
			if routeFn == nil {
				errs = append(errs, fmt.Sprintf("resource %q: route %q constructor cannot be nil", name, routeName))
			}
		}
	}

	return errs
}

func (c *Client) validateHooks() []string {
	var errs []string

	for i, hook := range c.hooks {
		if hook.BeforeRequest == nil && hook.AfterRequest == nil {
			errs = append(errs, fmt.Sprintf("hooks[%d] has neither capability set", i))
		}
	}
	for name, cfg := range c.resources {
		for i, hook := range cfg.Hooks {
			if hook.BeforeRequest == nil && hook.AfterRequest == nil {
				errs = append(errs, fmt.Sprintf("resource %q: hooks[%d] has neither capability set", name, i))
			}
		}
	}

	return errs
}

func (c *Client) validateDebugConfig() []string {
	var errs []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			errs = append(errs, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			errs = append(errs, "logger must be set when debug is enabled")
		}
	}

	return errs
}
