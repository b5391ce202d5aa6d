package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/shell"
	"github.com/aether-sh/aether/internal/store"
)

// transientReadRetries bounds the retry loop when a read catches a record
// file mid-rewrite.
const transientReadRetries = 3

func newContextCmd(s *store.FileStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Inspect the recorded session context",
	}
	cmd.AddCommand(
		newContextShowCmd(s),
		newContextFailureCmd(s),
		newContextHistoryCmd(),
	)
	return cmd
}

func newContextShowCmd(s *store.FileStore) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the most recent command's session context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := loadWithRetry(s.LoadContext)
			if err != nil {
				if errors.Is(err, store.ErrNoContext) {
					fmt.Fprintln(cmd.OutOrStdout(), "No session context recorded yet.")
					return nil
				}
				return fmt.Errorf("load session context: %w", err)
			}
			return printRecord(cmd, record, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw record as JSON")
	return cmd
}

func newContextFailureCmd(s *store.FileStore) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "failure",
		Short: "Show the most recent failing command's record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := loadWithRetry(s.LoadFailure)
			if err != nil {
				if errors.Is(err, store.ErrNoFailure) {
					fmt.Fprintln(cmd.OutOrStdout(), "No recent failure recorded.")
					return nil
				}
				return fmt.Errorf("load failure record: %w", err)
			}
			return printRecord(cmd, record, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw record as JSON")
	return cmd
}

func newContextHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent shell history lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return errors.New("limit must be greater than 0")
			}
			commands, err := shell.ReadHistory(limit)
			if err != nil {
				return fmt.Errorf("read shell history: %w", err)
			}
			if len(commands) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shell history found.")
				return nil
			}
			for _, command := range commands {
				fmt.Fprintln(cmd.OutOrStdout(), command)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of history lines to show")
	return cmd
}

// loadWithRetry re-reads records that were caught mid-rewrite. Writers replace
// files atomically, so a transient decode failure resolves on the next open.
func loadWithRetry(load func() (store.Record, error)) (store.Record, error) {
	var (
		record store.Record
		err    error
	)
	for attempt := 0; attempt < transientReadRetries; attempt++ {
		record, err = load()
		if !errors.Is(err, store.ErrTransient) {
			return record, err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return record, err
}

func printRecord(cmd *cobra.Command, record store.Record, asJSON bool) error {
	if asJSON {
		payload, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Command: %s\n", record.LastCommand)
	fmt.Fprintf(out, "Exit code: %d\n", record.LastExitCode)
	fmt.Fprintf(out, "Duration: %ds\n", record.Duration)
	fmt.Fprintf(out, "Directory: %s\n", record.WorkingDirectory)
	fmt.Fprintf(out, "Shell: %s\n", record.ShellType)
	fmt.Fprintf(out, "When: %s\n", time.Unix(record.Timestamp, 0).UTC().Format(time.RFC3339))
	return nil
}
