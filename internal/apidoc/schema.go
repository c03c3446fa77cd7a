package apidoc

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// registry turns Go types into schemas, collecting named structs as
// components.
type registry struct {
	schemas map[string]*Schema
	names   map[reflect.Type]string
}

func newRegistry(defined map[string]*Schema) *registry {
	g := &registry{
		schemas: make(map[string]*Schema, len(defined)),
		names:   make(map[reflect.Type]string),
	}
	for name, s := range defined {
		g.schemas[name] = s
	}
	return g
}

func (g *registry) schemaOf(t reflect.Type) *Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == reflect.TypeFor[time.Time]() {
		return &Schema{Type: "string", Format: "date-time"}
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16:
		return &Schema{Type: "integer"}
	case reflect.Int32:
		return &Schema{Type: "integer", Format: "int32"}
	case reflect.Int64:
		return &Schema{Type: "integer", Format: "int64"}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		zero := 0.0
		return &Schema{Type: "integer", Minimum: &zero}
	case reflect.Float32:
		return &Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &Schema{Type: "number", Format: "double"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "byte"}
		}
		return &Schema{Type: "array", Items: g.schemaOf(t.Elem())}
	case reflect.Array:
		return &Schema{Type: "array", Items: g.schemaOf(t.Elem())}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Type: "object"}
		}
		return &Schema{Type: "object", AdditionalProperties: g.schemaOf(t.Elem())}
	case reflect.Struct:
		if t.Name() == "" {
			return g.structSchema(t)
		}
		return g.component(t)
	default:
		return &Schema{}
	}
}

// component registers t under its component name and returns a reference.
func (g *registry) component(t reflect.Type) *Schema {
	if name, ok := g.names[t]; ok {
		return Ref(name)
	}

	name := componentName(t)
	base := name
	for i := 2; g.schemas[name] != nil; i++ {
		name = base + strconv.Itoa(i)
	}

	// Reserve the name before descending so recursive types terminate.
	g.names[t] = name
	g.schemas[name] = &Schema{}
	*g.schemas[name] = *g.structSchema(t)

	return Ref(name)
}

func (g *registry) structSchema(t reflect.Type) *Schema {
	s := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}
	g.addFields(s, t)
	return s
}

func (g *registry) addFields(s *Schema, t reflect.Type) {
	for i := range t.NumField() {
		f := t.Field(i)
		if isParamField(f) || skipType(f.Type) {
			continue
		}

		name, tagged := jsonName(f)
		if name == "-" {
			continue
		}

		if f.Anonymous && !tagged {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				g.addFields(s, et)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		prop := g.schemaOf(f.Type)
		if doc := f.Tag.Get("doc"); doc != "" {
			if prop.Ref != "" {
				prop = &Schema{AllOf: []*Schema{prop}}
			}
			prop.Description = doc
		}
		if ex, ok := f.Tag.Lookup("example"); ok && prop.Ref == "" {
			prop.Example = exampleValue(f.Type, ex)
		}

		s.Properties[name] = prop
		if f.Tag.Get("required") == "true" {
			s.Required = append(s.Required, name)
		}
	}
}

func isParamField(f reflect.StructField) bool {
	for _, tag := range paramTags {
		if f.Tag.Get(tag) != "" {
			return true
		}
	}
	return false
}

func skipType(t reflect.Type) bool {
	if t == reflect.TypeFor[*http.Request]() {
		return true
	}
	//exhaustive:ignore
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// jsonName returns the property name and whether the json tag named it.
func jsonName(f reflect.StructField) (string, bool) {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name, false
	}
	return name, true
}

// exampleValue converts an example tag to the field's JSON type so the
// example validates against its schema.
func exampleValue(t reflect.Type, raw string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	//exhaustive:ignore
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return n
		}
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case reflect.String:
		return raw
	}
	return nil
}

// componentName flattens a type name into a component key. Generic
// instantiations drop their package paths, so Elements[pkg.Pet] becomes
// ElementsPet.
func componentName(t reflect.Type) string {
	name := t.Name()
	base, args, generic := strings.Cut(name, "[")
	if !generic {
		return sanitize(name)
	}

	var b strings.Builder
	b.WriteString(sanitize(base))
	args = strings.TrimSuffix(args, "]")
	for arg := range strings.SplitSeq(args, ",") {
		arg = strings.TrimSpace(arg)
		if i := strings.LastIndexByte(arg, '.'); i >= 0 {
			arg = arg[i+1:]
		}
		arg = sanitize(arg)
		if arg == "" {
			continue
		}
		r := []rune(arg)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
}
