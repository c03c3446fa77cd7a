package rest

import "net/http"

// BodyLimit returns middleware that caps request bodies at maxBytes.
// A declared Content-Length above the cap is refused with 413 before the
// handler runs; typed handlers also answer 413 when a body without a
// length turns out to be too large.
func BodyLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeErrorResponse(w, Errorf(http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", maxBytes))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
