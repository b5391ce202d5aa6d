package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/hooks"
	"github.com/aether-sh/aether/internal/store"
)

func newHookCmd(s *store.FileStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal endpoint for the shell integration",
		Hidden: true,
	}
	cmd.AddCommand(newHookRecordCmd(s))
	return cmd
}

// newHookRecordCmd is the finalization endpoint invoked from the generated
// precmd hooks. It runs inline with the user's prompt, so it stays silent and
// always exits 0: a persistence failure loses one telemetry record, never the
// shell.
func newHookRecordCmd(s *store.FileStore) *cobra.Command {
	var (
		rawCommand string
		exitCode   int
		startedAt  int64
		shellName  string
		cwd        string
	)

	cmd := &cobra.Command{
		Use:    "record",
		Short:  "Record one command lifecycle event",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cwd == "" {
				cwd, _ = os.Getwd()
			}

			var started time.Time
			if startedAt > 0 {
				started = time.Unix(startedAt, 0)
			}

			sess := hooks.NewSession()
			hooks.NewRecorder().CommandStarted(sess, rawCommand, started)

			outcome := hooks.NewFinalizer(s).Finalize(sess, hooks.FinalizeInput{
				ExitCode:  exitCode,
				CWD:       cwd,
				ShellType: strings.ToLower(strings.TrimSpace(shellName)),
				Now:       time.Now(),
			})
			_ = outcome.PersistErr
			return nil
		},
	}

	cmd.Flags().StringVar(&rawCommand, "command", "", "Command line captured by the pre-execution hook")
	cmd.Flags().IntVar(&exitCode, "exit-code", 0, "Exit status captured as the first finalizer statement")
	cmd.Flags().Int64Var(&startedAt, "started-at", 0, "Pre-execution capture time, seconds since epoch (0 = unknown)")
	cmd.Flags().StringVar(&shellName, "shell", "", "Originating shell dialect")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory at finalization")
	return cmd
}
