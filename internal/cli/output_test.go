package cli

import (
	"bytes"
	"testing"
)

func TestTaggedOutputHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printOK(&buf, "writable: %s", "yes")
	printWarn(&buf, "missing %d files", 2)
	printError(&buf, "broken")
	printHint(&buf, "run `aether doctor`")

	want := "[OK] writable: yes\n[WARN] missing 2 files\n[ERROR] broken\nHint: run `aether doctor`\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}
