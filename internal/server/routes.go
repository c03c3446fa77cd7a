package server

import (
	"net/http"

	"github.com/bjaus/petdocs/internal/apidoc"
	"github.com/bjaus/petdocs/internal/rest"
)

// Paths of the documentation endpoints.
const (
	SpecJSONPath = "/openapi.json"
	SpecYAMLPath = "/openapi.yaml"
	DocsPath     = "/docs"
)

func (h *handlers) register(r *rest.Router, cfg Config) {
	rest.Get(r, "/pets", h.listPets)
	rest.Post(r, "/pets", h.createPet, rest.WithStatus(http.StatusCreated))
	rest.Get(r, "/pets/{id}", h.findPet)
	rest.Put(r, "/pets/{id}", h.updatePet)
	rest.Delete(r, "/pets/{id}", h.deletePet, rest.WithStatus(http.StatusOK))

	rest.Get(r, "/genericPets", h.genericPets)
	rest.Get(r, "/shapes", h.shapes)

	var opts []rest.GroupOption
	if cfg.RequestRate > 0 {
		opts = append(opts, rest.WithGroupMiddleware(rest.RateLimit(rest.RateLimitConfig{
			Rate:  cfg.RequestRate,
			Burst: cfg.RequestBurst,
		})))
	}
	debug := r.Group("/request", opts...)
	rest.Get(debug, "/info", h.info)
	rest.Get(debug, "/withQueryParameter", h.withQueryParameter)
	rest.Get(debug, "/withHeader", h.withHeader)
}

// mountDocs serves the document and its UI. These routes are left out of
// Routes and of the document itself.
func mountDocs(r *rest.Router, doc *apidoc.Document) {
	r.Handle(http.MethodGet, SpecJSONPath, apidoc.JSONHandler(doc))
	r.Handle(http.MethodGet, SpecYAMLPath, apidoc.YAMLHandler(doc))
	r.Handle(http.MethodGet, DocsPath, apidoc.UIHandler(SpecJSONPath, apidoc.WithUITitle(doc.Title())))
}
