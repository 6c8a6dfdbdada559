package cli

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	docview "github.com/reoring/docview"
	"github.com/reoring/docview/dsl"
	js "github.com/reoring/docview/jsonschema"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		policies   string
		policy     string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a document or of one policy's projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := dsl.LoadSchemaFile(schemaPath)
			if err != nil {
				return err
			}
			var out *js.Schema
			if policy == "" {
				out, err = s.JSONSchema()
			} else {
				out, err = a.projectionSchema(s, policies, policy)
			}
			if err != nil {
				return err
			}
			b, err := gojson.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to the YAML schema file")
	cmd.Flags().StringVar(&policies, "policies", "", "Path to the YAML policy file (default $DOCVIEW_POLICIES)")
	cmd.Flags().StringVar(&policy, "policy", "", "Restrict the schema to this policy's fields")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// projectionSchema describes what the named policy exposes of s.
func (a *app) projectionSchema(s *docview.Schema, policies, policy string) (*js.Schema, error) {
	reg, err := a.loadRegistry(policies)
	if err != nil {
		return nil, err
	}
	v, err := reg.View(policy, docview.New(s))
	if err != nil {
		return nil, err
	}
	return v.JSONSchema()
}
