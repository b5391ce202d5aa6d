package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadHistory returns up to limit most-recent lines from the user's bash or
// zsh history file, newest first. zsh extended-history metadata prefixes are
// stripped so both dialects yield bare command lines.
func ReadHistory(limit int) ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return readHistoryFrom(home, limit)
}

func readHistoryFrom(home string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	historyPaths := []string{
		filepath.Join(home, ".bash_history"),
		filepath.Join(home, ".zsh_history"),
	}

	for _, path := range historyPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		commands := make([]string, 0, limit)
		for i := len(lines) - 1; i >= 0 && len(commands) < limit; i-- {
			line := stripExtendedHistory(lines[i])
			if line == "" {
				continue
			}
			commands = append(commands, line)
		}
		return commands, nil
	}

	return nil, nil
}

// stripExtendedHistory removes the ": <epoch>:<elapsed>;" prefix zsh writes
// when EXTENDED_HISTORY is set.
func stripExtendedHistory(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ": ") {
		return trimmed
	}
	if idx := strings.Index(trimmed, ";"); idx != -1 {
		return strings.TrimSpace(trimmed[idx+1:])
	}
	return trimmed
}
