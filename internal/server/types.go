package server

import (
	"github.com/bjaus/petdocs/internal/petstore"
	"github.com/bjaus/petdocs/internal/rest"
)

// Elements wraps a collection under an "elements" field.
type Elements[T any] struct {
	Elements []T `json:"elements" yaml:"elements" required:"true" doc:"The wrapped collection"`
}

// Shape is the static body served by /shapes. Its documented schema
// points both fields at the shared "size" definition.
type Shape struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// PetID addresses a single pet.
type PetID struct {
	ID int64 `path:"id" doc:"Identifier of the pet"`
}

// UpdatePet carries the replacement record for a pet.
type UpdatePet struct {
	ID   int64 `path:"id" doc:"Identifier of the pet; must equal the id in the body"`
	Body petstore.Pet
}

// EchoRequest gives the echo handlers the raw request.
type EchoRequest struct {
	rest.RawRequest
}

// QueryParameter is the query string documented for
// /request/withQueryParameter.
type QueryParameter struct {
	rest.RawRequest
	MandatoryParameter int    `query:"mandatoryParameter" required:"true" doc:"An integer the caller is expected to send"`
	OptionalParameter  string `query:"optionalParameter" doc:"Free-form text"`
}

// Header is the set of headers documented for /request/withHeader.
type Header struct {
	rest.RawRequest
	MandatoryHeader string `header:"mandatoryHeader" required:"true" doc:"A header the caller is expected to send"`
	OptionalHeader  string `header:"optionalHeader" doc:"Free-form text"`
}
