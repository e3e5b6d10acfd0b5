// Package declient is a declarative builder for typed HTTP API clients:
// describe resources and routes once, get callable methods that perform HTTP
// requests with consistent headers, timeouts, encoding and cross-cutting
// hooks.
//
//   - Routes as plain strings ("/users/1", "POST /users") or structured
//     RouteOptions, built per call by constructor functions
//   - Layered configuration (client → resource → request) with defined
//     precedence: headers merge, timeouts pick the most specific, hooks
//     concatenate
//   - Before/after request hooks for auth, logging, rate limiting and
//     arbitrary request/result rewriting
//   - Pluggable transport, encoder and decoder; JSON by default
//   - Prometheus metrics and lightweight structured debug logging
//   - YAML client specs compiled into clients (LoadSpec / Spec.Build)
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - No shared per-call state; safe concurrent use of a single *Client
//   - Extensibility via user supplied hooks & pluggable transport / metrics
//
// Typical usage:
//
//	client := declient.New(
//	    declient.WithBaseURL("https://api.example.com"),
//	    declient.WithHeader("X-Api-Key", key),
//	    declient.WithResource("users", declient.ResourceConfig{
//	        Prefix: "/users",
//	        Routes: map[string]declient.RouteFunc{
//	            "get": func(args ...any) declient.Descriptor {
//	                return declient.Path(fmt.Sprintf("/%v", args[0]))
//	            },
//	            "create": func(args ...any) declient.Descriptor {
//	                return &declient.RouteOptions{Method: "POST", Route: "/", Body: args[0]}
//	            },
//	        },
//	    }),
//	)
//	res, err := client.Call(ctx, "users", "get", 1)
//	user, err := declient.As[User](res)
//
// A known quirk carried over deliberately: header-merge key comparison is
// case-sensitive, although HTTP header names are nominally case-insensitive.
// Changing it would silently alter override semantics between layers, so the
// behavior is documented instead of fixed; names are canonicalized only when
// the merged map is copied onto the outgoing request.
package declient
