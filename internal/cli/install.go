package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aether-sh/aether/internal/shell"
	"github.com/aether-sh/aether/internal/textblock"
)

const (
	bashHookBeginMarker = "# >>> aether hooks (bash) >>>"
	bashHookEndMarker   = "# <<< aether hooks (bash) <<<"
	zshHookBeginMarker  = "# >>> aether hooks (zsh) >>>"
	zshHookEndMarker    = "# <<< aether hooks (zsh) <<<"
)

func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the hook block in your shell profile",
	}
	cmd.AddCommand(
		newHooksInstallCmd(),
		newHooksUninstallCmd(),
		newHooksStatusCmd(),
	)
	return cmd
}

func newHooksInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <bash|zsh>",
		Short: "Install the profile hook block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := shell.ParseDialect(args[0])
			if err != nil {
				return err
			}
			path, err := profilePath(dialect)
			if err != nil {
				return err
			}
			begin, end := hookMarkers(dialect)
			return installProfileHook(cmd, path, begin, end, profileHookBlock(dialect))
		},
	}
}

func newHooksUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <bash|zsh>",
		Short: "Remove the profile hook block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := shell.ParseDialect(args[0])
			if err != nil {
				return err
			}
			path, err := profilePath(dialect)
			if err != nil {
				return err
			}
			begin, end := hookMarkers(dialect)
			return uninstallProfileHook(cmd, path, begin, end)
		},
	}
}

func newHooksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show hook install state for both dialects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, dialect := range []shell.Dialect{shell.Bash, shell.Zsh} {
				_, line := installStatus(dialect)
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func installProfileHook(cmd *cobra.Command, path, begin, end, block string) error {
	current, err := readTextFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read profile: %w", err)
	}
	updated, changed, err := textblock.Upsert(current, begin, end, block)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if err := writeTextFileAtomic(path, updated); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Installed hooks in %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Hooks already installed in %s\n", path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Open a new shell session to activate the hook.")
	return nil
}

func uninstallProfileHook(cmd *cobra.Command, path, begin, end string) error {
	current, err := readTextFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "No hook block found.")
			return nil
		}
		return fmt.Errorf("read profile: %w", err)
	}
	updated, changed, err := textblock.Remove(current, begin, end)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No hook block found.")
		return nil
	}
	if err := writeTextFileAtomic(path, updated); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed hooks from %s\n", path)
	return nil
}

func installStatus(d shell.Dialect) (bool, string) {
	path, err := profilePath(d)
	if err != nil {
		return false, fmt.Sprintf("- %s: cannot resolve profile", d)
	}
	begin, end := hookMarkers(d)

	state := "not found"
	content, readErr := readTextFile(path)
	if readErr == nil {
		if textblock.Contains(content, begin, end) {
			state = "installed"
		} else {
			state = "present (no aether block)"
		}
	}
	return state == "installed", fmt.Sprintf("- %s: %s", path, state)
}

func hookMarkers(d shell.Dialect) (begin, end string) {
	if d == shell.Zsh {
		return zshHookBeginMarker, zshHookEndMarker
	}
	return bashHookBeginMarker, bashHookEndMarker
}

// profileHookBlock keeps the rc file small: the block evals the full
// integration script so upgrades never require reinstalling.
func profileHookBlock(d shell.Dialect) string {
	begin, end := hookMarkers(d)
	return strings.Join([]string{
		begin,
		"if command -v aether >/dev/null 2>&1; then",
		fmt.Sprintf("  eval \"$(aether inject %s)\"", d),
		"fi",
		end,
	}, "\n")
}

func profilePath(d shell.Dialect) (string, error) {
	home, err := hooksHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("cannot resolve home directory for %s profile", d)
	}
	return filepath.Join(home, d.ProfileFile()), nil
}

func hooksHomeDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("AETHER_HOME_DIR")); override != "" {
		return override, nil
	}
	return os.UserHomeDir()
}

func readTextFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeTextFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
