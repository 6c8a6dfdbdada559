package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPoliciesCmd(a *app) *cobra.Command {
	var policies string

	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List the policies in a policy file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.loadRegistry(policies)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, name := range reg.Names() {
				p, _ := reg.Lookup(name)
				_, _ = fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(p.Fields(), ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policies, "policies", "", "Path to the YAML policy file (default $DOCVIEW_POLICIES)")

	return cmd
}
