// Package echo renders request metadata as a plain-text block for the
// debug endpoints.
package echo

import (
	"net/http"
	"slices"
	"strings"
)

// Category names used by FromRequest.
const (
	Parameter = "parameter"
	Header    = "header"
)

// Category is a named multi-valued key/value mapping, such as the query
// parameters or the headers of a request.
type Category struct {
	Name   string
	Values map[string][]string
}

// FromRequest collects the query parameters and headers of r. The parameter
// category is left out when the request has no query string.
func FromRequest(r *http.Request) []Category {
	var cats []Category
	if q := r.URL.Query(); len(q) > 0 {
		cats = append(cats, Category{Name: Parameter, Values: q})
	}
	return append(cats, Category{Name: Header, Values: r.Header})
}

// Format renders each category as a "name:" line followed by one
// "key: value" line per value. Keys are sorted; categories keep the order
// given and are separated by a blank line. A category without keys renders
// its name line only.
func Format(cats []Category) string {
	var b strings.Builder
	for i, c := range cats {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(c.Name)
		b.WriteString(":")

		keys := make([]string, 0, len(c.Values))
		for k := range c.Values {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			for _, v := range c.Values[k] {
				b.WriteString("\n")
				b.WriteString(k)
				b.WriteString(": ")
				b.WriteString(v)
			}
		}
	}
	return b.String()
}
