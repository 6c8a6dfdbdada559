package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	docview "github.com/reoring/docview"
	"github.com/reoring/docview/dsl"
	"github.com/reoring/docview/view"
)

// inputFormat picks the document format: the flag wins, then the file
// extension, then JSON.
func inputFormat(flag, path string) (docview.Format, error) {
	if flag != "" {
		return docview.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return docview.FormatYAML, nil
	}
	return docview.FormatJSON, nil
}

// loadDocument loads the schema file and parses the input document against it.
func (a *app) loadDocument(ctx context.Context, cmd *cobra.Command, schemaPath, inPath, inFormat string) (*docview.Document, error) {
	s, err := dsl.LoadSchemaFile(schemaPath)
	if err != nil {
		return nil, err
	}
	format, err := inputFormat(inFormat, inPath)
	if err != nil {
		return nil, err
	}
	data, err := readInput(cmd, inPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("parsing document", "schema", s.Name(), "input", inPath, "format", format.String())
	return docview.ParseDocument(ctx, s, data, docview.ParseOpt{Format: format})
}

// loadRegistry reads the policy file named by the flag or DOCVIEW_POLICIES.
func (a *app) loadRegistry(path string) (*view.Registry, error) {
	if path == "" {
		path = a.cfg.Policies
	}
	if path == "" {
		return nil, errNoPolicies
	}
	reg, err := view.LoadPoliciesFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("policies loaded", "path", path, "names", reg.Names())
	return reg, nil
}
