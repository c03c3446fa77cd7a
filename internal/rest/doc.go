// Package rest is the request plumbing of the demo server. Handlers are
// typed functions; the package owns parameter binding, body decoding,
// content negotiation and error rendering:
//
//	type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)
//
// Routes are registered with package-level generic functions:
//
//	r := rest.New()
//	rest.Get(r, "/pets/{id}", findPet)
//	rest.Post(r, "/pets", createPet, rest.WithStatus(http.StatusCreated))
//
// Request types bind path, query and header values through struct tags and
// take the request body from a field named Body:
//
//	type UpdatePetReq struct {
//	    ID   int64 `path:"id"`
//	    Body petstore.Pet
//	}
//
// Middleware uses the standard func(http.Handler) http.Handler signature.
// Documentation lives in package apidoc and is never consulted here.
package rest
