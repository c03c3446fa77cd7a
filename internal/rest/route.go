package rest

import "net/http"

// routeInfo holds what the router needs to mount a route.
type routeInfo struct {
	method  string
	pattern string
	status  int

	middleware []Middleware

	handler http.Handler
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeInfo)

// WithStatus sets the HTTP status code of a successful response.
func WithStatus(code int) RouteOption {
	return func(ri *routeInfo) {
		ri.status = code
	}
}

// WithMiddleware wraps this route only.
func WithMiddleware(mw ...Middleware) RouteOption {
	return func(ri *routeInfo) {
		ri.middleware = append(ri.middleware, mw...)
	}
}
