package server

import (
	"net/http"

	"github.com/bjaus/petdocs/internal/apidoc"
	"github.com/bjaus/petdocs/internal/petstore"
	"github.com/bjaus/petdocs/internal/rest"
)

// Document describes every route registered by the server.
func Document(cfg Config) *apidoc.Document {
	doc := apidoc.New("Pet Store", "1.0.0",
		apidoc.WithDescription("In-memory pet store with generated documentation, plus endpoints that echo request metadata."),
		apidoc.WithServer(cfg.BaseURL(), "Local server"),
		apidoc.WithTag("pets", "Pet store CRUD"),
		apidoc.WithTag("examples", "Static documentation examples"),
		apidoc.WithTag("request", "Echo request metadata as text"),
	)

	doc.Define("size", &apidoc.Schema{
		Type:        "integer",
		Format:      "int32",
		Description: "Edge length of a shape",
		Example:     10,
	})
	doc.Define("Shape", &apidoc.Schema{
		Type: "object",
		Properties: map[string]*apidoc.Schema{
			"a": apidoc.Ref("size"),
			"b": apidoc.Ref("size"),
		},
		Required: []string{"a", "b"},
	})

	doc.Add(petRoutes()...)
	doc.Add(exampleRoutes()...)
	doc.Add(requestRoutes()...)
	return doc
}

func problem(status int, desc string) apidoc.Response {
	return apidoc.Response{
		Status:      status,
		Description: desc,
		Shape:       apidoc.TypeOf[rest.ProblemDetail](),
		MediaType:   "application/problem+json",
	}
}

func petRoutes() []apidoc.Route {
	pet := apidoc.TypeOf[petstore.Pet]()
	badID := problem(http.StatusBadRequest, "The id is not an integer")
	notFound := problem(http.StatusNotFound, "No pet has this id")
	tooLarge := problem(http.StatusRequestEntityTooLarge, "The body exceeds the size limit")

	return []apidoc.Route{
		{
			Method:      http.MethodGet,
			Path:        "/pets",
			OperationID: "listPets",
			Summary:     "List pets",
			Description: "Returns every pet in creation order. Updated pets move to the end.",
			Tags:        []string{"pets"},
			Responses: []apidoc.Response{
				{Status: http.StatusOK, Description: "All pets", Shape: apidoc.TypeOf[[]petstore.Pet]()},
			},
		},
		{
			Method:      http.MethodPost,
			Path:        "/pets",
			OperationID: "createPet",
			Summary:     "Create a pet",
			Description: "Stores a pet under a server-assigned id. An id in the body is ignored.",
			Tags:        []string{"pets"},
			Body:        pet,
			Responses: []apidoc.Response{
				{Status: http.StatusCreated, Description: "The stored pet", Shape: pet},
				problem(http.StatusBadRequest, "The body could not be decoded"),
				tooLarge,
				problem(http.StatusUnsupportedMediaType, "The body is not JSON or YAML"),
			},
		},
		{
			Method:      http.MethodGet,
			Path:        "/pets/{id}",
			OperationID: "findPet",
			Summary:     "Find a pet",
			Tags:        []string{"pets"},
			Params:      apidoc.ParamsOf[PetID](),
			Responses: []apidoc.Response{
				{Status: http.StatusOK, Description: "The pet", Shape: pet},
				badID,
				notFound,
			},
		},
		{
			Method:      http.MethodPut,
			Path:        "/pets/{id}",
			OperationID: "updatePet",
			Summary:     "Replace a pet",
			Description: "Replaces the pet and moves it to the end of the list. The body id must equal the path id.",
			Tags:        []string{"pets"},
			Params:      apidoc.ParamsOf[UpdatePet](),
			Body:        pet,
			Responses: []apidoc.Response{
				{Status: http.StatusOK, Description: "The replaced pet", Shape: pet},
				badID,
				problem(http.StatusNotFound, "No pet has this id, or the body id differs"),
				tooLarge,
			},
		},
		{
			Method:      http.MethodDelete,
			Path:        "/pets/{id}",
			OperationID: "deletePet",
			Summary:     "Delete a pet",
			Tags:        []string{"pets"},
			Params:      apidoc.ParamsOf[PetID](),
			Responses: []apidoc.Response{
				{Status: http.StatusOK, Description: "The pet was deleted"},
				badID,
				notFound,
			},
		},
	}
}

func exampleRoutes() []apidoc.Route {
	return []apidoc.Route{
		{
			Method:      http.MethodGet,
			Path:        "/genericPets",
			OperationID: "listGenericPets",
			Summary:     "List pets in an envelope",
			Description: "Same records as GET /pets, wrapped in an elements field.",
			Tags:        []string{"examples"},
			Responses: []apidoc.Response{
				{Status: http.StatusOK, Description: "All pets", Shape: apidoc.TypeOf[Elements[petstore.Pet]]()},
			},
		},
		{
			Method:      http.MethodGet,
			Path:        "/shapes",
			OperationID: "getShape",
			Summary:     "Static shape",
			Description: "Both fields reference the shared size schema.",
			Tags:        []string{"examples"},
			Responses: []apidoc.Response{
				{Status: http.StatusOK, Description: "A fixed shape", Shape: apidoc.Named("Shape")},
			},
		},
	}
}

func requestRoutes() []apidoc.Route {
	echoed := apidoc.Response{
		Status:      http.StatusOK,
		Description: "Query parameters and headers, one per line",
		Shape:       apidoc.Text(),
	}
	limited := problem(http.StatusTooManyRequests, "Too many requests from this client")

	return []apidoc.Route{
		{
			Method:      http.MethodGet,
			Path:        "/request/info",
			OperationID: "requestInfo",
			Summary:     "Echo request metadata",
			Tags:        []string{"request"},
			Responses:   []apidoc.Response{echoed, limited},
		},
		{
			Method:      http.MethodGet,
			Path:        "/request/withQueryParameter",
			OperationID: "requestWithQueryParameter",
			Summary:     "Echo request metadata with documented query parameters",
			Tags:        []string{"request"},
			Params:      apidoc.ParamsOf[QueryParameter](),
			Responses: []apidoc.Response{
				echoed,
				problem(http.StatusBadRequest, "mandatoryParameter is not an integer"),
				limited,
			},
		},
		{
			Method:      http.MethodGet,
			Path:        "/request/withHeader",
			OperationID: "requestWithHeader",
			Summary:     "Echo request metadata with documented headers",
			Tags:        []string{"request"},
			Params:      apidoc.ParamsOf[Header](),
			Responses:   []apidoc.Response{echoed, limited},
		},
	}
}
