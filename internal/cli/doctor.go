package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/config"
	"github.com/aether-sh/aether/internal/shell"
	"github.com/aether-sh/aether/internal/store"
)

func newDoctorCmd(s *store.FileStore) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run local diagnostics for the aether setup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "aether doctor")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "OS: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "State store: %s\n", s.RootDir())
			fmt.Fprintf(out, "Session context file: %s\n", s.ContextPath())
			fmt.Fprintf(out, "Failure record file: %s\n", s.FailurePath())

			if err := ensureWritable(s); err != nil {
				printError(out, "Writable check: FAILED (%v)", err)
				printHint(out, "Hook records are dropped silently while the store is unwritable.")
			} else {
				printOK(out, "Writable check: OK")
			}

			if path, err := config.DefaultPath(); err == nil {
				if _, loadErr := config.Load(path); loadErr != nil {
					printWarn(out, "Config: %s does not parse (%v); defaults in effect", path, loadErr)
				} else {
					printOK(out, "Config: OK (%s)", path)
				}
			}

			if path, err := exec.LookPath("aether"); err != nil {
				printWarn(out, "Command lookup (`aether`): NOT FOUND in PATH")
				printHint(out, "The generated hooks resolve the binary via AETHER_BIN or PATH.")
			} else {
				printOK(out, "Command lookup (`aether`): OK (%s)", path)
			}

			fmt.Fprintln(out, "Profile hooks:")
			for _, dialect := range []shell.Dialect{shell.Bash, shell.Zsh} {
				_, line := installStatus(dialect)
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}
}

func ensureWritable(s *store.FileStore) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	file, err := os.CreateTemp(s.RootDir(), "doctor-write-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := file.Name()
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}
