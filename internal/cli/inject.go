package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/config"
	"github.com/aether-sh/aether/internal/shell"
)

func newInjectCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inject <bash|zsh>",
		Short: "Print the shell integration script for eval in your rc file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := shell.ParseDialect(args[0])
			if err != nil {
				return err
			}

			script, err := shell.IntegrationScript(dialect, cfg.ScriptOptions())
			if err != nil {
				return fmt.Errorf("generate integration script: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), script)
			return nil
		},
	}
}
