package rest

// Group is a set of routes under a shared prefix with shared middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupMiddleware adds middleware to the group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a new route group with the given prefix and options.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router: r,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Group) addRoute(ri routeInfo) {
	ri.pattern = g.prefix + ri.pattern
	g.router.addRoute(ri)
}

func (g *Group) getErrorHandler() ErrorHandler { return g.router.errorHandler }
func (g *Group) getCodecs() *codecRegistry     { return g.router.codecs }
func (g *Group) routeMiddleware() []Middleware { return g.middleware }
