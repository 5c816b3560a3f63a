package commands

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := parseLogLevel(in, "")
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestParseLogLevel_OverrideWins(t *testing.T) {
	got, err := parseLogLevel("error", "debug")
	if err != nil || got != slog.LevelDebug {
		t.Fatalf("expected debug override, got %v (%v)", got, err)
	}
	if _, err := parseLogLevel("info", "loud"); err == nil {
		t.Fatal("expected error for unknown override")
	}
}

func TestLogHandler_RedactsPasswords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, slog.LevelInfo))
	logger.Info("evaluated", "password", "hunter2", "tier", "weak")

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Fatalf("password leaked into logs: %s", out)
	}
	if !strings.Contains(out, "password=[REDACTED]") || !strings.Contains(out, "tier=weak") {
		t.Fatalf("unexpected log line: %s", out)
	}
}
