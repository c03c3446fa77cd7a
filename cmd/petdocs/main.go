// Command petdocs serves the pet store API with generated OpenAPI
// documentation.
//
//	petdocs                 serve on :8080, docs at http://localhost:8080/docs
//	petdocs -p 9000         serve on :9000
//	petdocs spec --yaml     print the document as YAML
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bjaus/petdocs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "petdocs:", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
