package rest

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Middleware is the standard middleware signature.
type Middleware func(next http.Handler) http.Handler

// Recovery returns middleware that recovers from panics, logs them and
// responds with a 500 problem detail.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"panic", rec,
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", GetRequestID(r),
					)
					writeErrorResponse(w, Error(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// DefaultHeaders returns middleware that sets the given response headers on
// every response. Handlers may still overwrite them.
func DefaultHeaders(headers map[string]string) Middleware {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, vs := range h {
				w.Header()[k] = append([]string(nil), vs...)
			}
			next.ServeHTTP(w, r)
		})
	}
}
