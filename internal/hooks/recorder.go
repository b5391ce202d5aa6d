package hooks

import (
	"strings"
	"time"
)

// Recorder is the pre-execution half of the protocol. It runs inline with
// every command the user types, so it never fails, never blocks, and never
// touches the filesystem.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// CommandStarted snapshots the command text and start time into the session.
// Guarded invocations (reentrant calls, the hook functions themselves, blank
// lines) return without mutating state, so a real preceding command's capture
// survives prompt-redraw noise.
func (r *Recorder) CommandStarted(sess *Session, command string, startedAt time.Time) {
	if sess.InHook {
		return
	}
	if strings.TrimSpace(command) == "" {
		return
	}
	if IsHookInvocation(command) {
		return
	}

	sess.LastCommand = command
	sess.StartedAt = startedAt
	sess.Pending = true
}
