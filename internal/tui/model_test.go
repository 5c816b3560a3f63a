package tui

import (
	"strings"
	"testing"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/MEKXH/passgauge/internal/render"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ev, err := policy.NewEvaluator(policy.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return New(ev, Options{BarWidth: 20, ShowRequirements: true})
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestUpdate_ReevaluatesOnEveryKeystroke(t *testing.T) {
	m := newTestModel(t)

	m = typeString(m, "abcdefgh")
	if m.Result().Valid || m.Result().Tier != policy.TierFair {
		t.Fatalf("unexpected result after lowercase input: %+v", m.Result())
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Result().Length != 7 {
		t.Fatalf("expected length 7 after backspace, got %d", m.Result().Length)
	}

	m = typeString(m, "A1")
	if !m.Result().Valid {
		t.Fatalf("expected valid result, got %+v", m.Result())
	}
}

func TestView_MasksInputAndShowsFeedback(t *testing.T) {
	m := typeString(newTestModel(t), "Abcdefg1")
	out := m.View()

	if strings.Contains(out, "Abcdefg1") {
		t.Fatalf("password must be masked, got:\n%s", out)
	}
	for _, want := range []string{render.RequirementsTitle, render.FeedbackValid, "Good", "Enter", "Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, out)
		}
	}
}

func TestView_EmptyInputHidesBar(t *testing.T) {
	out := newTestModel(t).View()
	if strings.Contains(out, "█") || strings.Contains(out, render.FeedbackInvalid) {
		t.Fatalf("expected no bar or feedback before typing, got:\n%s", out)
	}
}

func TestUpdate_TogglesRequirements(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.ShowingRequirements() {
		t.Fatal("expected requirements to be hidden")
	}
	if strings.Contains(m.View(), render.RequirementsTitle) {
		t.Fatal("expected checklist to be hidden in view")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if !m.ShowingRequirements() {
		t.Fatal("expected requirements to be shown again")
	}
}

func TestUpdate_RevealShowsPlainText(t *testing.T) {
	m := typeString(newTestModel(t), "secretA1")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlR})

	if !strings.Contains(m.View(), "secretA1") {
		t.Fatalf("expected revealed input, got:\n%s", m.View())
	}
	if m.Result().Length != 8 {
		t.Fatalf("reveal must not change the input, got length %d", m.Result().Length)
	}
}

func TestUpdate_SubmitKeepsResultAndClearsInput(t *testing.T) {
	m := typeString(newTestModel(t), "Abcdefghijkl1")
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.Submitted() || m.Aborted() {
		t.Fatal("expected submitted state")
	}
	if m.Result().Tier != policy.TierStrong {
		t.Fatalf("expected strong result to survive submit, got %s", m.Result().Tier)
	}
	if m.input.Value() != "" {
		t.Fatal("expected input to be cleared on submit")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after submit")
	}
}

func TestUpdate_EscAborts(t *testing.T) {
	m := typeString(newTestModel(t), "abc")
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil || !m.Aborted() || m.Submitted() {
		t.Fatal("expected aborted state with quit command")
	}
}
