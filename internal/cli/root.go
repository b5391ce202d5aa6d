package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/buildinfo"
	"github.com/aether-sh/aether/internal/config"
	"github.com/aether-sh/aether/internal/store"
)

// NewRootCommand wires the full command surface. A broken or absent config
// file degrades to defaults here; `aether doctor` reports the parse error.
// The hook path must never fail because of configuration.
func NewRootCommand() *cobra.Command {
	cfg := loadConfigOrDefault()
	s := store.NewFileStore(cfg.StoreRoot())

	var (
		mode      string
		buffer    string
		cursorPos int
	)

	rootCmd := &cobra.Command{
		Use:   "aether",
		Short: "Shell command telemetry and session context for your terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMode(cmd, s, mode, buffer, cursorPos)
		},
	}

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.Flags().StringVar(&mode, "mode", "lens", "Mode to run in (lens, pipe, sentinel)")
	rootCmd.Flags().StringVar(&buffer, "buffer", "", "Current edit-buffer content (lens mode)")
	rootCmd.Flags().IntVar(&cursorPos, "cursor-pos", 0, "Cursor position in the buffer (lens mode)")

	rootCmd.AddCommand(
		newInjectCmd(cfg),
		newHooksCmd(),
		newHookCmd(s),
		newContextCmd(s),
		newLensCmd(),
		newPipeCmd(),
		newSentinelCmd(s),
		newDoctorCmd(s),
		newVersionCmd(),
	)

	return rootCmd
}

func loadConfigOrDefault() config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default()
	}
	return cfg
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print aether build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aether %s\n", buildinfo.String())
		},
	}
}
