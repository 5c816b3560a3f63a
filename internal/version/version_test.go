package version

import (
	"strings"
	"testing"
)

func TestString_IncludesVersion(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "passgauge "+Version+" ") {
		t.Fatalf("unexpected version line %q", got)
	}
}

func TestString_IncludesCommitWhenSet(t *testing.T) {
	old := Commit
	Commit = "abc1234"
	t.Cleanup(func() { Commit = old })

	if !strings.HasSuffix(String(), "(abc1234)") {
		t.Fatalf("expected commit suffix, got %q", String())
	}
}
