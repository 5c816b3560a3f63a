package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MEKXH/passgauge/internal/policy"
)

const (
	auditFileMode = 0600
	auditDirMode  = 0755

	// FileName is the audit log kept next to the config file.
	FileName = "audit.jsonl"
)

// Event records one change to the persisted policy. It never carries a password.
type Event struct {
	Time   time.Time    `json:"time"`
	Type   string       `json:"type"`
	Policy PolicyRecord `json:"policy"`
}

// PolicyRecord is the policy as it stood after the change.
type PolicyRecord struct {
	MinLength           int    `json:"min_length"`
	RequireUppercase    bool   `json:"require_uppercase"`
	RequireLowercase    bool   `json:"require_lowercase"`
	RequireNumbers      bool   `json:"require_numbers"`
	RequireSpecialChars bool   `json:"require_special_chars"`
	SpecialChars        string `json:"special_chars,omitempty"`
}

// NewPolicyEvent builds an event of type typ for p.
func NewPolicyEvent(typ string, p policy.Config, at time.Time) Event {
	rec := PolicyRecord{
		MinLength:           p.MinLength,
		RequireUppercase:    p.RequireUppercase,
		RequireLowercase:    p.RequireLowercase,
		RequireNumbers:      p.RequireNumbers,
		RequireSpecialChars: p.RequireSpecialChars,
	}
	if p.RequireSpecialChars {
		rec.SpecialChars = p.SpecialChars
	}
	return Event{Time: at.UTC(), Type: typ, Policy: rec}
}

// Writer appends audit events to a JSONL file.
type Writer struct {
	path string
	mu   sync.Mutex
}

// NewWriter creates an append-only audit writer for <dir>/audit.jsonl.
func NewWriter(dir string) *Writer {
	return &Writer{
		path: filepath.Join(dir, FileName),
	}
}

// Path returns the audit file location.
func (w *Writer) Path() string {
	return w.path
}

// Append writes one event as one JSONL line.
func (w *Writer) Append(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), auditDirMode); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, auditFileMode)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer file.Close()

	encoded, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	encoded = append(encoded, '\n')

	if _, err := file.Write(encoded); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync audit file: %w", err)
	}
	return nil
}

// Read returns every event in file order, skipping malformed lines.
// A missing file yields no events.
func (w *Writer) Read() ([]Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	file, err := os.Open(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	defer file.Close()

	// Lines may exceed bufio.Scanner's token limit.
	var events []Event
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var evt Event
			if jsonErr := json.Unmarshal(line, &evt); jsonErr == nil {
				events = append(events, evt)
			}
		}
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, fmt.Errorf("read audit file: %w", err)
		}
	}
}
