package apidoc

import (
	"reflect"
	"strings"
	"unicode"
)

// Route documents one operation.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Params      []Param
	Body        Shape
	Responses   []Response
}

// Param documents a path, query or header parameter.
type Param struct {
	Name        string
	In          string
	Description string
	Required    bool
	Shape       Shape
}

// Response documents one status code of an operation. MediaType overrides
// the negotiated media types for shapes with a schema.
type Response struct {
	Status      int
	Description string
	Shape       Shape
	MediaType   string
}

type shapeKind int

const (
	shapeEmpty shapeKind = iota
	shapeType
	shapeNamed
	shapeText
)

// Shape is the documented form of a request or response body.
type Shape struct {
	kind shapeKind
	typ  reflect.Type
	name string
}

// TypeOf documents the Go type T.
func TypeOf[T any]() Shape {
	return Shape{kind: shapeType, typ: reflect.TypeFor[T]()}
}

// Named references a schema registered with Document.Define.
func Named(name string) Shape {
	return Shape{kind: shapeNamed, name: name}
}

// Text documents a text/plain body.
func Text() Shape {
	return Shape{kind: shapeText}
}

// Empty documents the absence of a body.
func Empty() Shape {
	return Shape{}
}

// IsEmpty reports whether s carries no body.
func (s Shape) IsEmpty() bool { return s.kind == shapeEmpty }

var paramTags = [...]string{"path", "query", "header"}

// ParamsOf derives parameters from the path, query and header tags of
// struct type T. Path parameters are always required; others are required
// when tagged required:"true".
func ParamsOf[T any]() []Param {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var params []Param
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		for _, tag := range paramTags {
			name := f.Tag.Get(tag)
			if name == "" {
				continue
			}
			params = append(params, Param{
				Name:        name,
				In:          tag,
				Description: f.Tag.Get("doc"),
				Required:    tag == "path" || f.Tag.Get("required") == "true",
				Shape:       Shape{kind: shapeType, typ: f.Type},
			})
		}
	}
	return params
}

// openAPIPath converts a ServeMux pattern to an OpenAPI path.
func openAPIPath(pattern string) string {
	p := strings.ReplaceAll(pattern, "{$}", "")
	return strings.ReplaceAll(p, "...}", "}")
}

// operationID derives an id such as getPetsId from a method and path.
func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for seg := range strings.SplitSeq(path, "/") {
		seg = strings.Trim(seg, "{}.$")
		if seg == "" {
			continue
		}
		r := []rune(seg)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
