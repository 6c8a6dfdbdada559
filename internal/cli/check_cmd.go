package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		inFormat   string
	)

	cmd := &cobra.Command{
		Use:   "check <document|->",
		Short: "Validate a document against a schema",
		Long:  "Parses the document against the schema and reports every issue found. Exits non-zero when the document is invalid.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd.Context(), cmd, schemaPath, args[0], inFormat)
			if err != nil {
				return err
			}
			if err := doc.Validate(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to the YAML schema file")
	cmd.Flags().StringVar(&inFormat, "in", "", "Input format (json, yaml); guessed from the file extension when empty")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
