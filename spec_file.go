package declient

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Spec is a declarative client description loadable from YAML. Route strings
// follow the same grammar as inline routes ("/path" or "VERB /path") and may
// contain {placeholder} segments filled positionally from call arguments.
//
//	baseUrl: https://api.example.com
//	timeout: 30s
//	headers:
//	  X-Api-Key: secret
//	resources:
//	  users:
//	    prefix: /users
//	    routes:
//	      get: "GET /{id}"
//	      create: "POST /"
type Spec struct {
	BaseURL   string                  `yaml:"baseUrl"`
	Timeout   Duration                `yaml:"timeout,omitempty"`
	Headers   map[string]string       `yaml:"headers,omitempty"`
	Resources map[string]ResourceSpec `yaml:"resources"`
}

// ResourceSpec describes one resource in a Spec.
type ResourceSpec struct {
	Prefix  string            `yaml:"prefix,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Routes  map[string]string `yaml:"routes"`
}

// Duration parses YAML scalars like "30s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadSpec reads and parses a YAML client spec file.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec parses a YAML client spec.
func ParseSpec(data []byte) (*Spec, error) {
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("failed to parse spec: %w", err)
	}
	if err := validateSpec(spec); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return spec, nil
}

func validateSpec(spec *Spec) error {
	if spec.BaseURL == "" {
		return fmt.Errorf("baseUrl is required")
	}
	if len(spec.Resources) == 0 {
		return fmt.Errorf("at least one resource is required")
	}
	for name, res := range spec.Resources {
		if len(res.Routes) == 0 {
			return fmt.Errorf("resource %q: at least one route is required", name)
		}
		for routeName, route := range res.Routes {
			if route == "" {
				return fmt.Errorf("resource %q: route %q is empty", name, routeName)
			}
			if _, err := DecodeRoute("", stripPlaceholders(route)); err != nil {
				return fmt.Errorf("resource %q: route %q: %w", name, routeName, err)
			}
		}
	}
	return nil
}

// Build compiles the spec into a Client. Additional options apply after the
// spec-derived ones, so callers can attach hooks, transports or metrics.
func (s *Spec) Build(extra ...Option) *Client {
	options := []Option{
		WithBaseURL(s.BaseURL),
		WithHeaders(s.Headers),
	}
	if s.Timeout != 0 {
		options = append(options, WithTimeout(time.Duration(s.Timeout)))
	}
	for name, res := range s.Resources {
		routes := make(map[string]RouteFunc, len(res.Routes))
		for routeName, route := range res.Routes {
			routes[routeName] = templateRoute(route)
		}
		options = append(options, WithResource(name, ResourceConfig{
			Prefix:  res.Prefix,
			Headers: res.Headers,
			Timeout: time.Duration(res.Timeout),
			Routes:  routes,
		}))
	}
	return New(append(options, extra...)...)
}

var placeholderPattern = regexp.MustCompile(`\{[^{}]*\}`)

// templateRoute turns a route template into a RouteFunc substituting call
// arguments into {placeholder} segments in order of appearance.
func templateRoute(route string) RouteFunc {
	placeholders := placeholderPattern.FindAllStringIndex(route, -1)
	return func(args ...any) Descriptor {
		if len(args) != len(placeholders) {
			return invalidDescriptor{err: fmt.Errorf(
				"route %q expects %d argument(s), got %d", route, len(placeholders), len(args))}
		}
		if len(placeholders) == 0 {
			return Path(route)
		}
		var out []byte
		last := 0
		for i, span := range placeholders {
			out = append(out, route[last:span[0]]...)
			out = append(out, stringifyQueryValue(args[i])...)
			last = span[1]
		}
		out = append(out, route[last:]...)
		return Path(string(out))
	}
}

func stripPlaceholders(route string) string {
	return placeholderPattern.ReplaceAllString(route, "_")
}
