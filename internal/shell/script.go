package shell

import (
	"fmt"
	"strings"
	"text/template"
)

// Options tune the generated integration scripts. Zero values fall back to
// the defaults below.
type Options struct {
	// Keybinding is spelled "ctrl-<key>", e.g. "ctrl-space" or "ctrl-g".
	Keybinding    string
	PipeAlias     string
	SentinelAlias string
}

const (
	DefaultKeybinding    = "ctrl-space"
	DefaultPipeAlias     = "ae"
	DefaultSentinelAlias = "??"
)

type scriptData struct {
	BashKey       string
	ZshKey        string
	PipeAlias     string
	SentinelAlias string
}

// IntegrationScript renders the hook script for one dialect. The script is
// meant to be eval'd (or sourced) from the shell's rc file.
func IntegrationScript(d Dialect, opts Options) (string, error) {
	if opts.Keybinding == "" {
		opts.Keybinding = DefaultKeybinding
	}
	if opts.PipeAlias == "" {
		opts.PipeAlias = DefaultPipeAlias
	}
	if opts.SentinelAlias == "" {
		opts.SentinelAlias = DefaultSentinelAlias
	}

	zshKey, bashKey, err := keySequences(opts.Keybinding)
	if err != nil {
		return "", err
	}

	data := scriptData{
		BashKey:       bashKey,
		ZshKey:        zshKey,
		PipeAlias:     opts.PipeAlias,
		SentinelAlias: opts.SentinelAlias,
	}

	var tmpl *template.Template
	switch d {
	case Bash:
		tmpl = bashTemplate
	case Zsh:
		tmpl = zshTemplate
	default:
		return "", fmt.Errorf("unsupported shell: %s. Use 'zsh' or 'bash'", d)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render %s integration script: %w", d, err)
	}
	return out.String(), nil
}

// keySequences converts a "ctrl-<key>" spec into the zsh bindkey sequence and
// the bash readline sequence.
func keySequences(spec string) (zshKey, bashKey string, err error) {
	normalized := strings.ToLower(strings.TrimSpace(spec))
	const prefix = "ctrl-"
	if !strings.HasPrefix(normalized, prefix) {
		return "", "", fmt.Errorf("unsupported keybinding %q: expected ctrl-<key>", spec)
	}

	suffix := strings.TrimPrefix(normalized, prefix)
	var key string
	switch {
	case suffix == "space":
		key = " "
	case len(suffix) == 1 && suffix[0] >= 'a' && suffix[0] <= 'z':
		key = suffix
	default:
		return "", "", fmt.Errorf("unsupported keybinding %q: expected ctrl-<key>", spec)
	}

	return "^" + key, `\C-` + key, nil
}

var bashTemplate = template.Must(template.New("bash").Parse(`#!/usr/bin/env bash
# aether shell integration (bash)
# Generated by 'aether inject bash'. Do not edit by hand.

AETHER_BIN="${AETHER_BIN:-$(command -v aether)}"
if [ -z "$AETHER_BIN" ]; then
  return 0 2>/dev/null || exit 0
fi

__AETHER_IN_HOOK=0
__aether_cmd=""
__aether_start=0
# Stays "off" until the first precmd has run, so nothing executed while this
# script is being sourced can ever be captured.
__aether_interactive="off"

__aether_preexec() {
  if [ "$__AETHER_IN_HOOK" = "1" ]; then return; fi
  case "$1" in
    ""|__aether_precmd*|__aether_preexec*|__aether_lens*|__aether_sentinel_trigger*) return ;;
  esac
  __aether_cmd="$1"
  __aether_start=$(date +%s)
}

__aether_precmd() {
  local __aether_exit=$?
  if [ "$__AETHER_IN_HOOK" = "1" ]; then return; fi
  __AETHER_IN_HOOK=1
  if [ -n "$__aether_cmd" ]; then
    "$AETHER_BIN" hook record --command "$__aether_cmd" --exit-code "$__aether_exit" --started-at "$__aether_start" --shell bash --cwd "$PWD" >/dev/null 2>&1 || true
  fi
  __aether_cmd=""
  __aether_start=0
  __AETHER_IN_HOOK=0
  __aether_interactive="on"
}

# True when the statement belongs to PROMPT_COMMAND. A pre-existing prompt
# chain (starship, direnv, history -a) re-runs before every prompt and must
# never be captured as a user command.
__aether_in_prompt_command() {
  local __aether_part
  local __aether_oldifs="$IFS"
  IFS=';'
  for __aether_part in $PROMPT_COMMAND; do
    __aether_part="${__aether_part#"${__aether_part%%[![:space:]]*}"}"
    __aether_part="${__aether_part%"${__aether_part##*[![:space:]]}"}"
    if [ "$__aether_part" = "$1" ]; then
      IFS="$__aether_oldifs"
      return 0
    fi
  done
  IFS="$__aether_oldifs"
  return 1
}

# Only the first statement after a prompt is a user command; everything else
# the DEBUG trap sees (prompt chains, later statements of a compound line) is
# skipped.
__aether_debug_trap() {
  [ -n "${COMP_LINE:-}" ] && return
  [ "$__aether_interactive" = "off" ] && return
  __aether_in_prompt_command "$BASH_COMMAND" && return
  __aether_interactive="off"
  __aether_preexec "$BASH_COMMAND"
}

if [ -n "${PROMPT_COMMAND:-}" ]; then
  case ";$PROMPT_COMMAND;" in
    *";__aether_precmd;"*) ;;
    *) PROMPT_COMMAND="__aether_precmd; $PROMPT_COMMAND" ;;
  esac
else
  PROMPT_COMMAND="__aether_precmd"
fi

__aether_lens() {
  local __aether_out
  __aether_out=$("$AETHER_BIN" --mode lens --buffer "$READLINE_LINE" --cursor-pos "$READLINE_POINT")
  if [ -n "$__aether_out" ]; then
    READLINE_LINE="$__aether_out"
    READLINE_POINT=${#READLINE_LINE}
  fi
}
if [ -n "${PS1:-}" ]; then
  bind -x '"{{.BashKey}}": __aether_lens' 2>/dev/null || true
fi

alias {{.PipeAlias}}="$AETHER_BIN --mode pipe"
__aether_sentinel_trigger() {
  "$AETHER_BIN" --mode sentinel
}
alias '{{.SentinelAlias}}'='__aether_sentinel_trigger'

# Installed last so no statement of this script runs under the trap.
trap '__aether_debug_trap' DEBUG
`))

var zshTemplate = template.Must(template.New("zsh").Parse(`#!/usr/bin/env zsh
# aether shell integration (zsh)
# Generated by 'aether inject zsh'. Do not edit by hand.

AETHER_BIN="${AETHER_BIN:-$(command -v aether)}"
if [ -z "$AETHER_BIN" ]; then
  return 0
fi

typeset -g __AETHER_IN_HOOK=0
typeset -g __aether_cmd=""
typeset -g __aether_start=0

__aether_preexec() {
  if [[ "$__AETHER_IN_HOOK" == "1" ]]; then return; fi
  case "$1" in
    ""|__aether_precmd*|__aether_preexec*|__aether_lens*|__aether_sentinel_trigger*) return ;;
  esac
  __aether_cmd="$1"
  __aether_start=$(date +%s)
}

__aether_precmd() {
  local __aether_exit=$?
  if [[ "$__AETHER_IN_HOOK" == "1" ]]; then return; fi
  __AETHER_IN_HOOK=1
  if [[ -n "$__aether_cmd" ]]; then
    "$AETHER_BIN" hook record --command "$__aether_cmd" --exit-code "$__aether_exit" --started-at "$__aether_start" --shell zsh --cwd "$PWD" >/dev/null 2>&1 || true
  fi
  __aether_cmd=""
  __aether_start=0
  __AETHER_IN_HOOK=0
}

autoload -Uz add-zsh-hook
add-zsh-hook preexec __aether_preexec
add-zsh-hook precmd __aether_precmd

__aether_lens() {
  local __aether_out
  __aether_out=$("$AETHER_BIN" --mode lens --buffer "$BUFFER" --cursor-pos "$CURSOR")
  if [[ -n "$__aether_out" ]]; then
    BUFFER="$__aether_out"
    CURSOR=${#BUFFER}
  fi
  zle reset-prompt
}
zle -N __aether_lens
bindkey '{{.ZshKey}}' __aether_lens

alias {{.PipeAlias}}="$AETHER_BIN --mode pipe"
__aether_sentinel_trigger() {
  "$AETHER_BIN" --mode sentinel
}
alias '{{.SentinelAlias}}'='__aether_sentinel_trigger'
`))
