package rest

import (
	"errors"
	"net/http"
	"reflect"
)

// Registrar is the interface accepted by the registration functions.
// Both *Router and *Group implement it.
type Registrar interface {
	addRoute(ri routeInfo)
	getErrorHandler() ErrorHandler
	getCodecs() *codecRegistry
	routeMiddleware() []Middleware
}

func (r *Router) getErrorHandler() ErrorHandler { return r.errorHandler }
func (r *Router) getCodecs() *codecRegistry     { return r.codecs }
func (r *Router) routeMiddleware() []Middleware { return nil }

// register is the internal generic registration function.
func register[Req, Resp any](reg Registrar, method, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	ri := routeInfo{
		method:  method,
		pattern: pattern,
	}

	for _, opt := range opts {
		opt(&ri)
	}

	// Void response defaults to 204, everything else to 200.
	if ri.status == 0 {
		if reflect.TypeFor[Resp]() == reflect.TypeFor[Void]() {
			ri.status = http.StatusNoContent
		} else {
			ri.status = http.StatusOK
		}
	}

	ri.handler = buildHandler(h, ri.status, reg.getCodecs(), reg.getErrorHandler())
	mount(reg, ri)
}

// mount applies route and group middleware, innermost first, and hands the
// route to the registrar.
func mount(reg Registrar, ri routeInfo) {
	for i := len(ri.middleware) - 1; i >= 0; i-- {
		ri.handler = ri.middleware[i](ri.handler)
	}
	groupMW := reg.routeMiddleware()
	for i := len(groupMW) - 1; i >= 0; i-- {
		ri.handler = groupMW[i](ri.handler)
	}
	reg.addRoute(ri)
}

// buildHandler wraps a typed Handler into an http.Handler.
func buildHandler[Req, Resp any](h Handler[Req, Resp], defaultStatus int, codecs *codecRegistry, errHandler ErrorHandler) http.Handler {
	writeErr := func(w http.ResponseWriter, r *http.Request, err error) {
		if errHandler != nil {
			errHandler(w, r, err)
			return
		}
		writeErrorResponse(w, err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRequest[Req](r, codecs)
		if err != nil {
			writeErr(w, r, Error(decodeStatus(err), err.Error()))
			return
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			writeErr(w, r, err)
			return
		}

		if _, ok := any(resp).(*Void); ok || resp == nil {
			w.WriteHeader(defaultStatus)
			return
		}

		encodeResponse(w, r, resp, defaultStatus, codecs)
	})
}

// decodeStatus maps a request decoding failure to its status code.
func decodeStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

// Get registers a GET handler.
func Get[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodGet, pattern, h, opts...)
}

// Post registers a POST handler.
func Post[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodPost, pattern, h, opts...)
}

// Put registers a PUT handler.
func Put[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodPut, pattern, h, opts...)
}

// Delete registers a DELETE handler.
func Delete[Req, Resp any](reg Registrar, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(reg, http.MethodDelete, pattern, h, opts...)
}

// Raw registers a raw http handler.
func Raw(reg Registrar, method, pattern string, h RawHandler, opts ...RouteOption) {
	ri := routeInfo{
		method:  method,
		pattern: pattern,
		handler: http.HandlerFunc(h),
	}
	for _, opt := range opts {
		opt(&ri)
	}
	mount(reg, ri)
}
