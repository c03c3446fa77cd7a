package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/gorilla/schema"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("query")
	d.IgnoreUnknownKeys(true)
	return d
}

// requestCategory describes how a request type should be decoded.
type requestCategory int

const (
	catVoid     requestCategory = iota // Void, nothing to bind
	catBodyOnly                        // entire struct is the body
	catParams                          // param tags and/or RawRequest, no body
	catMixed                           // params from tagged fields, body from Body
)

// classifyRequest determines how a request type should be decoded.
func classifyRequest(t reflect.Type) requestCategory {
	if t == reflect.TypeFor[Void]() {
		return catVoid
	}
	if hasBodyField(t) {
		return catMixed
	}
	if hasParamTags(t) || hasRawRequest(t) {
		return catParams
	}
	return catBodyOnly
}

// decodeRequest creates a new Req value and populates it from the HTTP request.
func decodeRequest[Req any](r *http.Request, codecs *codecRegistry) (*Req, error) {
	req := new(Req)
	t := reflect.TypeFor[Req]()
	cat := classifyRequest(t)

	if cat == catVoid || t.Kind() != reflect.Struct {
		return req, nil
	}

	if err := bindParams(req, r); err != nil {
		return nil, err
	}

	switch cat {
	case catBodyOnly:
		if err := decodeBody(r, req, codecs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
		}
	case catMixed:
		bodyPtr := reflect.ValueOf(req).Elem().FieldByName("Body").Addr().Interface()
		if err := decodeBody(r, bodyPtr, codecs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
		}
	}

	return req, nil
}

// bindParams binds path, query and header values to tagged struct fields
// and injects the *http.Request into an embedded RawRequest.
func bindParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Body" {
			continue
		}

		field := v.Field(i)

		if name := f.Tag.Get("path"); name != "" {
			if val := r.PathValue(name); val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindPath, name, err)
				}
			}
		}

		if name := f.Tag.Get("header"); name != "" {
			if val := r.Header.Get(name); val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindHeader, name, err)
				}
			}
		}

		if f.Type == reflect.TypeFor[RawRequest]() {
			field.Set(reflect.ValueOf(RawRequest{Request: r}))
		}
	}

	return bindQuery(v, r.URL.Query())
}

// bindQuery decodes the query string into the query-tagged fields of v.
// The tagged fields are projected onto a throwaway struct first so the
// decoder never walks the Body or RawRequest fields.
func bindQuery(v reflect.Value, q url.Values) error {
	if len(q) == 0 {
		return nil
	}

	t := v.Type()
	var (
		fields []reflect.StructField
		index  []int
	)
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("query")
		if !f.IsExported() || tag == "" {
			continue
		}
		fields = append(fields, reflect.StructField{
			Name: f.Name,
			Type: f.Type,
			Tag:  reflect.StructTag(`query:"` + tag + `"`),
		})
		index = append(index, i)
	}
	if len(fields) == 0 {
		return nil
	}

	proj := reflect.New(reflect.StructOf(fields))
	if err := queryDecoder.Decode(proj.Interface(), q); err != nil {
		return fmt.Errorf("%w: %w", ErrBindQuery, err)
	}
	for j, i := range index {
		v.Field(i).Set(proj.Elem().Field(j))
	}
	return nil
}

// setFieldValue sets a reflect.Value from a string, supporting common types.
func setFieldValue(field reflect.Value, value string) error {
	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

// decodeBody decodes the request body into target with the decoder that
// matches the request's Content-Type.
func decodeBody(r *http.Request, target any, codecs *codecRegistry) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	ct := r.Header.Get("Content-Type")
	dec, ok := codecs.decoderFor(ct)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ct)
	}
	return dec.Decode(r.Body, target)
}
