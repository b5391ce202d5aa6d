package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/store"
)

// runMode dispatches the bare `aether --mode <m>` invocation used by the
// generated shell integration.
func runMode(cmd *cobra.Command, s *store.FileStore, mode, buffer string, cursorPos int) error {
	switch mode {
	case "lens":
		return runLensMode(cmd, buffer, cursorPos)
	case "pipe":
		return runPipeMode(cmd)
	case "sentinel":
		return runSentinelMode(cmd, s)
	default:
		return fmt.Errorf("unknown mode: %s. Use lens, pipe or sentinel", mode)
	}
}

func newLensCmd() *cobra.Command {
	var (
		buffer    string
		cursorPos int
	)

	cmd := &cobra.Command{
		Use:   "lens",
		Short: "Run in lens mode (edit-buffer overlay)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLensMode(cmd, buffer, cursorPos)
		},
	}

	cmd.Flags().StringVar(&buffer, "buffer", "", "Current edit-buffer content")
	cmd.Flags().IntVar(&cursorPos, "cursor-pos", 0, "Cursor position in the buffer")
	return cmd
}

func newPipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pipe",
		Short: "Run in pipe mode (process stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeMode(cmd)
		},
	}
}

func newSentinelCmd(s *store.FileStore) *cobra.Command {
	return &cobra.Command{
		Use:   "sentinel",
		Short: "Run in sentinel mode (failure analysis)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSentinelMode(cmd, s)
		},
	}
}

// runLensMode leaves the edit buffer untouched: printing nothing tells the
// keybinding widget to keep the user's line. The overlay consumer that would
// produce a replacement line is a separate process.
func runLensMode(_ *cobra.Command, _ string, _ int) error {
	return nil
}

func runPipeMode(cmd *cobra.Command) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Usage: cat file.txt | aether --mode pipe")
		return errors.New("no input provided via stdin")
	}

	preview := string(data)
	if len([]rune(preview)) > 100 {
		preview = string([]rune(preview)[:100])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Received %d bytes of input\n", len(data))
	fmt.Fprintf(cmd.OutOrStdout(), "Data preview: %s\n", preview)
	return nil
}

func runSentinelMode(cmd *cobra.Command, s *store.FileStore) error {
	record, err := loadWithRetry(s.LoadFailure)
	if err != nil {
		if errors.Is(err, store.ErrNoFailure) {
			fmt.Fprintln(cmd.OutOrStdout(), "No recent failure recorded.")
			return nil
		}
		return fmt.Errorf("load failure record: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Last failing command:")
	return printRecord(cmd, record, false)
}
