package hooks

import (
	"strings"
	"time"

	"github.com/aether-sh/aether/internal/store"
)

// Sink receives the finalized records. *store.FileStore satisfies it; tests
// substitute in-memory and failing sinks.
type Sink interface {
	WriteContext(record store.Record) error
	WriteFailure(record store.Record) error
}

type FinalizeInput struct {
	ExitCode  int
	CWD       string
	ShellType string
	Now       time.Time
}

// Outcome reports what one finalization did. PersistErr carries any store
// failure; callers on the command-execution path discard it, which is the
// single boundary where fire-and-forget telemetry loss is allowed.
type Outcome struct {
	Persisted     bool
	WroteFailure  bool
	SkippedReason string
	Record        store.Record
	PersistErr    error
}

type Finalizer struct {
	sink Sink
}

func NewFinalizer(sink Sink) *Finalizer {
	return &Finalizer{sink: sink}
}

// Finalize converts the session's pending capture into persisted records.
// input.ExitCode must be the just-completed command's status, captured by the
// caller before any other statement ran; Finalize never recomputes it.
func (f *Finalizer) Finalize(sess *Session, input FinalizeInput) Outcome {
	sess.InHook = true
	defer func() {
		sess.InHook = false
	}()

	if !sess.Pending {
		// First prompt after shell start, an empty line, or a suppressed
		// hook call. Leave the store alone, including any prior failure.
		sess.StartedAt = time.Time{}
		return Outcome{SkippedReason: "no_pending_command"}
	}
	sess.Pending = false

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	var duration int64
	if !sess.StartedAt.IsZero() {
		duration = int64(now.Sub(sess.StartedAt).Seconds())
		if duration < 0 {
			duration = 0
		}
	}
	sess.StartedAt = time.Time{}

	record := store.Record{
		LastCommand:      sess.LastCommand,
		LastExitCode:     input.ExitCode,
		Duration:         duration,
		WorkingDirectory: input.CWD,
		ShellType:        input.ShellType,
		Timestamp:        now.Unix(),
	}

	outcome := Outcome{Record: record}
	if err := f.sink.WriteContext(record); err != nil {
		outcome.PersistErr = err
		return outcome
	}
	outcome.Persisted = true

	if input.ExitCode != 0 && strings.TrimSpace(sess.LastCommand) != "" {
		if err := f.sink.WriteFailure(record); err != nil {
			outcome.PersistErr = err
			return outcome
		}
		outcome.WroteFailure = true
	}

	return outcome
}
