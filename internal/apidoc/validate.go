package apidoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate loads the rendered document with kin-openapi and runs its
// validator, catching dangling references and malformed schemas.
func Validate(ctx context.Context, spec *OpenAPI) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	return nil
}
