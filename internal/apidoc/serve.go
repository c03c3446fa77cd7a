package apidoc

import (
	"encoding/json"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// JSONHandler serves the rendered document as JSON.
func JSONHandler(d *Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort after headers
		Write(w, d)
	})
}

// YAMLHandler serves the rendered document as YAML.
func YAMLHandler(d *Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after headers
		WriteYAML(w, d)
	})
}

// Write writes the rendered document as indented JSON.
func Write(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.Spec())
}

// WriteYAML writes the rendered document as YAML.
func WriteYAML(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.Spec()); err != nil {
		return err
	}
	return enc.Close()
}
