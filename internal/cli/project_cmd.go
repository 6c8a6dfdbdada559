package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	docview "github.com/reoring/docview"
)

var errNoPolicies = errors.New("no policy file: pass --policies or set DOCVIEW_POLICIES")

func newProjectCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		policies   string
		policy     string
		inFormat   string
		outFormat  string
		indent     string
		sortKeys   bool
		omitNull   bool
	)

	cmd := &cobra.Command{
		Use:   "project <document|->",
		Short: "Print a document as seen through one policy",
		Long:  "Parses the document against the schema, applies the named policy and prints only the whitelisted fields.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := a.loadDocument(ctx, cmd, schemaPath, args[0], inFormat)
			if err != nil {
				return err
			}
			reg, err := a.loadRegistry(policies)
			if err != nil {
				return err
			}
			v, err := reg.View(policy, doc)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				outFormat = a.cfg.Format
			}
			if !cmd.Flags().Changed("indent") {
				indent = a.cfg.Indent
			}
			format, err := docview.ParseFormat(outFormat)
			if err != nil {
				return err
			}
			opts := []docview.EncodeOption{docview.WithFormat(format)}
			if indent != "" {
				opts = append(opts, docview.WithIndent("", indent))
			}
			if sortKeys {
				opts = append(opts, docview.WithSortKeys())
			}
			if omitNull {
				opts = append(opts, docview.WithOmitNull())
			}

			out, err := v.Serialize(ctx, opts...)
			if err != nil {
				return err
			}
			a.logger.Info("projected", "schema", doc.Schema().Name(), "policy", v.Name(), "fields", v.Fields())
			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if format == docview.FormatJSON {
				_, _ = fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to the YAML schema file")
	cmd.Flags().StringVar(&policies, "policies", "", "Path to the YAML policy file (default $DOCVIEW_POLICIES)")
	cmd.Flags().StringVar(&policy, "policy", "", "Name of the policy to apply")
	cmd.Flags().StringVar(&inFormat, "in", "", "Input format (json, yaml); guessed from the file extension when empty")
	cmd.Flags().StringVarP(&outFormat, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVar(&indent, "indent", "", "Indent string for output")
	cmd.Flags().BoolVar(&sortKeys, "sort-keys", false, "Sort output keys alphabetically")
	cmd.Flags().BoolVar(&omitNull, "omit-null", false, "Drop unset fields from output")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("policy")

	return cmd
}
