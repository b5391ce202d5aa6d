// Package hooks implements the command lifecycle protocol: a pre-execution
// recorder that snapshots the command about to run and a finalizer that turns
// that snapshot into persisted session context once the command completes.
package hooks

import (
	"path/filepath"
	"strings"
	"time"
)

// Hook identifiers the recorder must never capture. Some dialects fire the
// pre-execution hook for every statement, including the hook functions' own
// bookkeeping calls triggered by prompt redraws.
const (
	PreexecFunc  = "__aether_preexec"
	PrecmdFunc   = "__aether_precmd"
	SentinelFunc = "__aether_sentinel_trigger"
	LensFunc     = "__aether_lens"
)

// Session is the hook state for one shell process. It replaces the ambient
// shell-global variables of the original scripts with an explicit struct that
// both the recorder and the finalizer operate on.
type Session struct {
	LastCommand string
	StartedAt   time.Time
	// Pending is set by the recorder and consumed by the finalizer; a
	// finalizer run without a pending capture writes nothing.
	Pending bool
	// InHook suppresses recorder invocations triggered by the finalizer's
	// own statements.
	InHook bool
}

func NewSession() *Session {
	return &Session{}
}

// IsHookInvocation reports whether the command names one of the hook
// functions or an internal aether hook call.
func IsHookInvocation(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}

	head := strings.Trim(fields[0], `"'`)
	switch head {
	case PreexecFunc, PrecmdFunc, SentinelFunc, LensFunc:
		return true
	}

	binary := strings.ToLower(filepath.Base(head))
	if binary != "aether" && binary != "aether.exe" {
		return false
	}
	return len(fields) > 1 && fields[1] == "hook"
}
