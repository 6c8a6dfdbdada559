// Package cli implements the docview command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	docview "github.com/reoring/docview"
	"github.com/reoring/docview/i18n"
	"github.com/reoring/docview/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// app carries state resolved once in PersistentPreRunE.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// printError lists every issue on its own line; other errors print as-is.
func printError(w io.Writer, err error) {
	var iss docview.Issues
	if errors.As(err, &iss) {
		for _, it := range iss {
			_, _ = fmt.Fprintf(w, "Error: %s: %s\n", it.Path, it.Message)
		}
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	rootCmd := &cobra.Command{
		Use:           "docview",
		Short:         "Project schema-typed documents through named field whitelists",
		Long:          "docview loads a document schema and a set of view policies, then prints or checks documents as seen through one policy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lvl, _ := config.ParseLevel(cfg.LogLevel)
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
			i18n.SetLanguage(cfg.Lang)
			a.logger.Debug("config loaded", "format", cfg.Format, "lang", cfg.Lang, "policies", cfg.Policies)
			return nil
		},
	}

	rootCmd.AddCommand(newProjectCmd(a))
	rootCmd.AddCommand(newSchemaCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newPoliciesCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
