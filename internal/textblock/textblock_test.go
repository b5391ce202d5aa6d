package textblock

import (
	"errors"
	"strings"
	"testing"
)

const (
	testBegin = "# >>> aether hooks (zsh) >>>"
	testEnd   = "# <<< aether hooks (zsh) <<<"
)

func testBlock(body string) string {
	return testBegin + "\n" + body + "\n" + testEnd
}

func TestUpsertIntoEmptyContent(t *testing.T) {
	t.Parallel()

	block := testBlock("eval hook")
	updated, changed, err := Upsert("", testBegin, testEnd, block)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !changed {
		t.Fatalf("expected change on empty content")
	}
	if updated != block+"\n" {
		t.Fatalf("unexpected content: %q", updated)
	}
}

func TestUpsertAppendsToExistingProfile(t *testing.T) {
	t.Parallel()

	block := testBlock("eval hook")
	updated, changed, err := Upsert("export PATH=$PATH:/opt/bin", testBegin, testEnd, block)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !changed {
		t.Fatalf("expected change")
	}
	if !strings.HasPrefix(updated, "export PATH=$PATH:/opt/bin\n\n") {
		t.Fatalf("existing content mangled: %q", updated)
	}
	if !strings.Contains(updated, block) {
		t.Fatalf("block missing: %q", updated)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	block := testBlock("eval hook")
	once, _, err := Upsert("", testBegin, testEnd, block)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	twice, changed, err := Upsert(once, testBegin, testEnd, block)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if changed {
		t.Fatalf("expected no change on identical block")
	}
	if twice != once {
		t.Fatalf("content drifted: %q vs %q", twice, once)
	}
}

func TestUpsertReplacesStaleBlock(t *testing.T) {
	t.Parallel()

	stale, _, err := Upsert("alias ll='ls -l'", testBegin, testEnd, testBlock("old body"))
	if err != nil {
		t.Fatalf("seed upsert: %v", err)
	}
	updated, changed, err := Upsert(stale, testBegin, testEnd, testBlock("new body"))
	if err != nil {
		t.Fatalf("replace upsert: %v", err)
	}
	if !changed {
		t.Fatalf("expected change when block body differs")
	}
	if strings.Contains(updated, "old body") {
		t.Fatalf("stale body survived: %q", updated)
	}
	if !strings.Contains(updated, "new body") {
		t.Fatalf("new body missing: %q", updated)
	}
	if strings.Count(updated, testBegin) != 1 {
		t.Fatalf("expected exactly one block: %q", updated)
	}
}

func TestUpsertRejectsMalformedMarkers(t *testing.T) {
	t.Parallel()

	if _, _, err := Upsert(testEnd+"\n"+testBegin, testBegin, testEnd, testBlock("x")); !errors.Is(err, ErrMalformedMarkers) {
		t.Fatalf("expected ErrMalformedMarkers, got %v", err)
	}
	if _, _, err := Upsert(testBegin+"\norphan", testBegin, testEnd, testBlock("x")); !errors.Is(err, ErrMalformedMarkers) {
		t.Fatalf("expected ErrMalformedMarkers for orphan begin, got %v", err)
	}
}

func TestRemoveDeletesBlock(t *testing.T) {
	t.Parallel()

	content, _, err := Upsert("alias ll='ls -l'", testBegin, testEnd, testBlock("eval hook"))
	if err != nil {
		t.Fatalf("seed upsert: %v", err)
	}
	updated, changed, err := Remove(content, testBegin, testEnd)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !changed {
		t.Fatalf("expected change")
	}
	if strings.Contains(updated, testBegin) {
		t.Fatalf("block survived: %q", updated)
	}
	if !strings.Contains(updated, "alias ll='ls -l'") {
		t.Fatalf("surrounding content lost: %q", updated)
	}
}

func TestRemoveWithoutBlockIsNoop(t *testing.T) {
	t.Parallel()

	updated, changed, err := Remove("plain profile\n", testBegin, testEnd)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if changed {
		t.Fatalf("expected no change")
	}
	if updated != "plain profile\n" {
		t.Fatalf("content mutated: %q", updated)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	content, _, err := Upsert("", testBegin, testEnd, testBlock("eval hook"))
	if err != nil {
		t.Fatalf("seed upsert: %v", err)
	}
	if !Contains(content, testBegin, testEnd) {
		t.Fatalf("expected block to be detected")
	}
	if Contains("nothing here", testBegin, testEnd) {
		t.Fatalf("false positive")
	}
}
