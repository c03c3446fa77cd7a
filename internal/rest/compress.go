package rest

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// CompressConfig configures the Compress middleware.
type CompressConfig struct {
	Level   int      // gzip level (1-9, default: 5)
	MinSize int      // minimum size of the first write to compress (default: 1024)
	Types   []string // content types to compress (default: application/json, application/yaml, text/*)
}

// Compress returns middleware that gzip-compresses responses. The decision
// is made on the first write, so the status line is held back until then.
func Compress(cfg ...CompressConfig) Middleware {
	c := CompressConfig{
		Level:   5,
		MinSize: 1024,
		Types:   []string{"application/json", "application/yaml", "text/"},
	}
	if len(cfg) > 0 {
		if cfg[0].Level > 0 {
			c.Level = cfg[0].Level
		}
		if cfg[0].MinSize > 0 {
			c.MinSize = cfg[0].MinSize
		}
		if len(cfg[0].Types) > 0 {
			c.Types = cfg[0].Types
		}
	}

	pool := &sync.Pool{
		New: func() any {
			gz, _ := gzip.NewWriterLevel(io.Discard, c.Level) //nolint:errcheck // level is pre-validated
			return gz
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")

			gw := &gzipResponseWriter{
				ResponseWriter: w,
				pool:           pool,
				minSize:        c.MinSize,
				types:          c.Types,
			}
			defer gw.finish()

			next.ServeHTTP(gw, r)
		})
	}
}

type gzipResponseWriter struct {
	http.ResponseWriter
	pool    *sync.Pool
	writer  *gzip.Writer
	minSize int
	types   []string

	status      int
	wroteHeader bool
	decided     bool
}

func (g *gzipResponseWriter) WriteHeader(code int) {
	if g.wroteHeader {
		return
	}
	g.wroteHeader = true
	g.status = code
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if !g.decided {
		g.decided = true
		if g.shouldCompress(g.Header().Get("Content-Type")) && len(b) >= g.minSize {
			g.writer = g.pool.Get().(*gzip.Writer) //nolint:errcheck,forcetypeassert // pool.New always returns *gzip.Writer
			g.writer.Reset(g.ResponseWriter)
			g.Header().Set("Content-Encoding", "gzip")
			g.Header().Del("Content-Length")
		}
		g.flushHeader()
	}

	if g.writer != nil {
		return g.writer.Write(b)
	}
	return g.ResponseWriter.Write(b)
}

func (g *gzipResponseWriter) flushHeader() {
	status := g.status
	if status == 0 {
		status = http.StatusOK
	}
	g.ResponseWriter.WriteHeader(status)
}

// finish writes a held-back status for empty bodies and releases the gzip
// writer.
func (g *gzipResponseWriter) finish() {
	if !g.decided {
		g.decided = true
		if g.wroteHeader {
			g.flushHeader()
		}
	}
	if g.writer != nil {
		//nolint:errcheck,gosec // best-effort flush
		g.writer.Close()
		g.writer.Reset(io.Discard)
		g.pool.Put(g.writer)
		g.writer = nil
	}
}

func (g *gzipResponseWriter) shouldCompress(contentType string) bool {
	if strings.Contains(contentType, "event-stream") {
		return false
	}
	if g.Header().Get("Content-Encoding") != "" {
		return false
	}
	for _, t := range g.types {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

func (g *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}
