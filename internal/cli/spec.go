package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/petdocs/internal/apidoc"
	"github.com/bjaus/petdocs/internal/server"
)

func newSpecCmd(cfg *server.Config) *cobra.Command {
	var (
		asYAML bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Print the OpenAPI document without starting a server",
		Args: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				return newUsageError(fmt.Sprintf("unexpected argument %q\n\n%s", args[0], c.UsageString()))
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			doc := server.Document(*cfg)
			if err := apidoc.Validate(c.Context(), doc.Spec()); err != nil {
				return err
			}

			if output == "" {
				return writeDoc(c.OutOrStdout(), doc, asYAML)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := writeDoc(f, doc, asYAML); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Write YAML instead of JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func writeDoc(w io.Writer, doc *apidoc.Document, asYAML bool) error {
	var err error
	if asYAML {
		err = apidoc.WriteYAML(w, doc)
	} else {
		err = apidoc.Write(w, doc)
	}
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
