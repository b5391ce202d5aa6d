// Package shell adapts the dialect-independent lifecycle protocol to concrete
// shells: it renders the bash and zsh integration scripts and reads native
// shell history.
package shell

import (
	"fmt"
	"strings"
)

type Dialect string

const (
	Bash Dialect = "bash"
	Zsh  Dialect = "zsh"
)

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s. Use 'zsh' or 'bash'", name)
	}
}

func (d Dialect) String() string {
	return string(d)
}

// ProfileFile returns the rc file the hook block is installed into.
func (d Dialect) ProfileFile() string {
	if d == Zsh {
		return ".zshrc"
	}
	return ".bashrc"
}
