package cli

import (
	"strings"
	"testing"
)

func TestDoctorReportsStoreAndHooks(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("AETHER_STATE_DIR", stateDir)
	t.Setenv("AETHER_HOME_DIR", t.TempDir())

	out, _, err := runCommand(t, "", "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}

	for _, want := range []string{
		"aether doctor",
		"State store: " + stateDir,
		"session_context.json",
		"last_session.json",
		"[OK] Writable check: OK",
		"Profile hooks:",
		".bashrc: not found",
		".zshrc: not found",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("doctor output missing %q:\n%s", want, out)
		}
	}
}
