// Package apidoc renders OpenAPI 3.0 documents from a declarative route
// table.
//
// Routes are described next to the code that registers them, but the
// table is never consulted while requests are served:
//
//	d := apidoc.New("Pets", "1.0.0")
//	d.Add(apidoc.Route{
//		Method:      http.MethodGet,
//		Path:        "/pets/{id}",
//		OperationID: "findPet",
//		Params:      apidoc.ParamsOf[FindPetRequest](),
//		Responses: []apidoc.Response{
//			{Status: http.StatusOK, Description: "The pet", Shape: apidoc.TypeOf[Pet]()},
//		},
//	})
//
// Go types become component schemas named after the type. Struct tags
// drive the result: json names the property, doc describes it, required
// marks it required and example attaches an example value.
package apidoc
