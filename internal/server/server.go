// Package server wires the pet store, the echo endpoints and the generated
// documentation onto a rest.Router.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/bjaus/petdocs/internal/apidoc"
	"github.com/bjaus/petdocs/internal/petstore"
	"github.com/bjaus/petdocs/internal/rest"
)

// Server is the demo API.
type Server struct {
	cfg    Config
	logger *slog.Logger
	router *rest.Router
	doc    *apidoc.Document
}

// New builds a server around store. A nil logger uses slog.Default.
func New(cfg Config, logger *slog.Logger, store *petstore.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := rest.New(
		rest.WithLogger(logger),
		rest.WithShutdownTimeout(cfg.ShutdownTimeout),
	)
	r.Use(
		rest.RequestID(),
		rest.Logger(logger),
		rest.Recovery(logger),
		rest.Compress(),
		rest.DefaultHeaders(map[string]string{
			"X-Content-Type-Options": "nosniff",
		}),
	)

	if cfg.MaxBodyBytes > 0 {
		r.Use(rest.BodyLimit(cfg.MaxBodyBytes))
	}

	h := &handlers{store: store, logger: logger}
	h.register(r, cfg)

	doc := Document(cfg)
	mountDocs(r, doc)

	return &Server{
		cfg:    cfg,
		logger: logger,
		router: r,
		doc:    doc,
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Routes lists the API routes, excluding the documentation endpoints.
func (s *Server) Routes() []rest.RouteKey { return s.router.Routes() }

// Document returns the API document.
func (s *Server) Document() *apidoc.Document { return s.doc }

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting", "addr", s.cfg.Addr(), "docs", s.cfg.BaseURL()+DocsPath)
	return s.router.ListenAndServe(ctx, s.cfg.Addr())
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	return s.router.Serve(ctx, ln)
}
