package audit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MEKXH/passgauge/internal/policy"
)

func TestWriter_AppendAndRead(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	first := time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)
	if err := writer.Append(NewPolicyEvent("policy_set", policy.DefaultConfig(), first)); err != nil {
		t.Fatalf("Append first event error: %v", err)
	}
	special, _ := policy.NewConfig(policy.WithSpecialChars(true), policy.WithSpecialCharSet("#"))
	if err := writer.Append(NewPolicyEvent("policy_set", special, first.Add(time.Second))); err != nil {
		t.Fatalf("Append second event error: %v", err)
	}

	if writer.Path() != filepath.Join(dir, FileName) {
		t.Fatalf("unexpected path %s", writer.Path())
	}

	events, err := writer.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Time.Equal(first) || events[0].Policy.MinLength != 8 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[0].Policy.SpecialChars != "" {
		t.Fatal("special set should be omitted when not required")
	}
	if !events[1].Policy.RequireSpecialChars || events[1].Policy.SpecialChars != "#" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestWriter_ReadMissingFile(t *testing.T) {
	events, err := NewWriter(t.TempDir()).Read()
	if err != nil || len(events) != 0 {
		t.Fatalf("expected no events and no error, got %v %v", events, err)
	}
}

func TestWriter_ReadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	body := "not json\n" + `{"time":"2026-01-01T00:00:00Z","type":"policy_reset","policy":{"min_length":8}}` + "\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	events, err := NewWriter(dir).Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(events) != 1 || events[0].Type != "policy_reset" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestWriter_ReadLongLine(t *testing.T) {
	writer := NewWriter(t.TempDir())

	set := strings.Repeat("#", 256<<10)
	cfg, err := policy.NewConfig(policy.WithSpecialChars(true), policy.WithSpecialCharSet(set))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if err := writer.Append(NewPolicyEvent("policy_set", cfg, time.Now())); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := writer.Append(NewPolicyEvent("policy_reset", policy.DefaultConfig(), time.Now())); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	events, err := writer.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if len(events[0].Policy.SpecialChars) != len(set) {
		t.Fatalf("expected full special set, got %d bytes", len(events[0].Policy.SpecialChars))
	}
	if events[1].Type != "policy_reset" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestWriter_ConcurrentAppend(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	const total = 20
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := writer.Append(NewPolicyEvent("policy_set", policy.DefaultConfig(), time.Now())); err != nil {
				t.Errorf("Append error: %v", err)
			}
		}()
	}
	wg.Wait()

	raw, err := os.ReadFile(writer.Path())
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if got := strings.Count(string(raw), "\n"); got != total {
		t.Fatalf("expected %d lines, got %d", total, got)
	}
}
