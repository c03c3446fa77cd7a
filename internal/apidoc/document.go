package apidoc

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Document collects routes and shared schemas and renders them as an
// OpenAPI document.
type Document struct {
	info    Info
	servers []Server
	tags    []Tag

	mu      sync.RWMutex
	routes  []Route
	defined map[string]*Schema
}

// Option configures a Document.
type Option func(*Document)

// WithDescription sets the API description.
func WithDescription(desc string) Option {
	return func(d *Document) {
		d.info.Description = desc
	}
}

// WithServer lists a base URL the API is served from.
func WithServer(url, desc string) Option {
	return func(d *Document) {
		d.servers = append(d.servers, Server{URL: url, Description: desc})
	}
}

// WithTag describes a tag used by routes.
func WithTag(name, desc string) Option {
	return func(d *Document) {
		d.tags = append(d.tags, Tag{Name: name, Description: desc})
	}
}

// New creates an empty document.
func New(title, version string, opts ...Option) *Document {
	d := &Document{
		info:    Info{Title: title, Version: version},
		defined: make(map[string]*Schema),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add appends routes to the document.
func (d *Document) Add(routes ...Route) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes = append(d.routes, routes...)
}

// Define registers a component schema under name. Named shapes and
// Ref schemas refer to it.
func (d *Document) Define(name string, s *Schema) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defined[name] = s
}

// Routes returns the documented routes in the order they were added.
func (d *Document) Routes() []Route {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.routes)
}

// Documents reports whether an operation is documented for method and
// the ServeMux pattern.
func (d *Document) Documents(method, pattern string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.ContainsFunc(d.routes, func(r Route) bool {
		return r.Method == method && r.Path == pattern
	})
}

// Title returns the document title.
func (d *Document) Title() string { return d.info.Title }

// Spec renders the document.
func (d *Document) Spec() *OpenAPI {
	d.mu.RLock()
	defer d.mu.RUnlock()

	g := newRegistry(d.defined)
	spec := &OpenAPI{
		OpenAPI: Version,
		Info:    d.info,
		Servers: slices.Clone(d.servers),
		Tags:    d.renderTags(),
		Paths:   make(map[string]PathItem),
	}

	for _, r := range d.routes {
		path := openAPIPath(r.Path)
		if spec.Paths[path] == nil {
			spec.Paths[path] = make(PathItem)
		}
		spec.Paths[path][strings.ToLower(r.Method)] = g.operation(r)
	}

	if len(g.schemas) > 0 {
		spec.Components = &Components{Schemas: g.schemas}
	}
	return spec
}

// renderTags lists declared tags first, then undeclared route tags in
// order of first use.
func (d *Document) renderTags() []Tag {
	tags := slices.Clone(d.tags)
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		seen[t.Name] = true
	}
	for _, r := range d.routes {
		for _, name := range r.Tags {
			if !seen[name] {
				seen[name] = true
				tags = append(tags, Tag{Name: name})
			}
		}
	}
	return tags
}

func (g *registry) operation(r Route) *Operation {
	op := &Operation{
		OperationID: r.OperationID,
		Summary:     r.Summary,
		Description: r.Description,
		Tags:        slices.Clone(r.Tags),
		Responses:   make(map[string]*ResponseObject, len(r.Responses)),
	}
	if op.OperationID == "" {
		op.OperationID = operationID(r.Method, r.Path)
	}

	for _, p := range r.Params {
		schema := g.shapeSchema(p.Shape)
		if schema == nil {
			schema = &Schema{Type: "string"}
		}
		op.Parameters = append(op.Parameters, &Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required || p.In == "path",
			Schema:      schema,
		})
	}

	if !r.Body.IsEmpty() {
		op.RequestBody = &RequestBody{
			Required: true,
			Content:  g.content(r.Body, ""),
		}
	}

	for _, resp := range r.Responses {
		desc := resp.Description
		if desc == "" {
			desc = http.StatusText(resp.Status)
		}
		op.Responses[strconv.Itoa(resp.Status)] = &ResponseObject{
			Description: desc,
			Content:     g.content(resp.Shape, resp.MediaType),
		}
	}
	if len(op.Responses) == 0 {
		op.Responses["default"] = &ResponseObject{Description: "Response"}
	}

	return op
}

// content renders the media types of a body. Schema shapes are offered in
// every negotiable encoding unless mediaType pins one.
func (g *registry) content(s Shape, mediaType string) map[string]*MediaType {
	schema := g.shapeSchema(s)
	if schema == nil {
		return nil
	}
	if s.kind == shapeText {
		if mediaType == "" {
			mediaType = "text/plain"
		}
		return map[string]*MediaType{mediaType: {Schema: schema}}
	}
	if mediaType != "" {
		return map[string]*MediaType{mediaType: {Schema: schema}}
	}

	content := make(map[string]*MediaType, len(negotiable))
	for _, mt := range negotiable {
		content[mt] = &MediaType{Schema: schema}
	}
	return content
}

// negotiable lists the media types schema bodies are served in.
var negotiable = []string{"application/json", "application/yaml"}

func (g *registry) shapeSchema(s Shape) *Schema {
	switch s.kind {
	case shapeType:
		return g.schemaOf(s.typ)
	case shapeNamed:
		return Ref(s.name)
	case shapeText:
		return &Schema{Type: "string"}
	case shapeEmpty:
		return nil
	}
	return nil
}
