package apidoc

import (
	"html/template"
	"net/http"
)

// UIOption configures the docs UI.
type UIOption func(*uiConfig)

type uiConfig struct {
	Title   string
	SpecURL string
}

// WithUITitle sets the page title of the docs UI.
func WithUITitle(title string) UIOption {
	return func(c *uiConfig) {
		c.Title = title
	}
}

// UIHandler serves a Stoplight Elements page rendering the document at
// specURL.
func UIHandler(specURL string, opts ...UIOption) http.Handler {
	cfg := uiConfig{
		Title:   "API Reference",
		SpecURL: specURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		uiTemplate.Execute(w, cfg)
	})
}

var uiTemplate = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="sidebar"
  />
</body>
</html>`))
