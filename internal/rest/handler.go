package rest

import (
	"context"
	"net/http"
)

// Void is used as a type parameter when a request has no parameters or body,
// or when a response has no body.
type Void struct{}

// Handler is the typed handler signature. Handlers never see the
// http.ResponseWriter; they return a value or an error.
type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// RawHandler is an escape hatch for handlers that need the underlying
// http primitives.
type RawHandler func(w http.ResponseWriter, r *http.Request)

// RawRequest can be embedded in a request type to get access to the
// underlying *http.Request.
type RawRequest struct {
	Request *http.Request
}
