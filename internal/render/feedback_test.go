package render

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/MEKXH/passgauge/internal/policy"
)

func TestChecklist_MarksPassedRules(t *testing.T) {
	cfg := policy.DefaultConfig()
	res := policy.Evaluate("abcdefgh", cfg)

	out := New(20).Checklist(policy.Requirements(cfg), res)

	if !strings.Contains(out, RequirementsTitle) {
		t.Fatalf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "✓ At least 8 characters") {
		t.Errorf("expected length to be checked, got:\n%s", out)
	}
	if !strings.Contains(out, "✓ One lowercase letter (a-z)") {
		t.Errorf("expected lowercase to be checked, got:\n%s", out)
	}
	if !strings.Contains(out, "• One uppercase letter (A-Z)") {
		t.Errorf("expected uppercase to be pending, got:\n%s", out)
	}
	if strings.Contains(out, "special character") {
		t.Errorf("special requirement should be hidden when not required, got:\n%s", out)
	}
}

func TestFeedback_EmptyPasswordHidden(t *testing.T) {
	r := New(20)
	if got := r.Feedback(policy.Evaluate("", policy.DefaultConfig())); got != "" {
		t.Fatalf("expected no feedback, got %q", got)
	}
	if got := r.StrengthBar(policy.Evaluate("", policy.DefaultConfig())); got != "" {
		t.Fatalf("expected no bar, got %q", got)
	}
}

func TestFeedback_ValidAndInvalid(t *testing.T) {
	r := New(20)
	if got := r.Feedback(policy.Evaluate("Abcdefg1", policy.DefaultConfig())); !strings.Contains(got, FeedbackValid) {
		t.Fatalf("expected valid feedback, got %q", got)
	}
	if got := r.Feedback(policy.Evaluate("abc", policy.DefaultConfig())); !strings.Contains(got, FeedbackInvalid) {
		t.Fatalf("expected invalid feedback, got %q", got)
	}
}

func TestStrengthBar_FillFollowsTier(t *testing.T) {
	r := New(20)
	cases := map[string]struct {
		filled int
		label  string
	}{
		"abc":           {5, "Weak"},
		"abcdefgh":      {10, "Fair"},
		"Abcdefg1":      {15, "Good"},
		"Abcdefghijkl1": {20, "Strong"},
	}
	for pw, want := range cases {
		out := r.StrengthBar(policy.Evaluate(pw, policy.DefaultConfig()))
		if got := strings.Count(out, "█"); got != want.filled {
			t.Errorf("%q: expected %d filled cells, got %d", pw, want.filled, got)
		}
		if got := strings.Count(out, "█") + strings.Count(out, "░"); got != 20 {
			t.Errorf("%q: expected bar width 20, got %d", pw, got)
		}
		if !strings.Contains(out, want.label) {
			t.Errorf("%q: expected label %s, got:\n%s", pw, want.label, out)
		}
	}
}

func TestReport_OmitsChecklistWhenHidden(t *testing.T) {
	cfg := policy.DefaultConfig()
	res := policy.Evaluate("Abcdefg1", cfg)
	out := New(10).Report(policy.Requirements(cfg), res, false)

	if strings.Contains(out, RequirementsTitle) {
		t.Fatalf("expected checklist to be hidden, got:\n%s", out)
	}
	if !strings.Contains(out, FeedbackValid) || !strings.Contains(out, "Good") {
		t.Fatalf("expected feedback and bar, got:\n%s", out)
	}
}

func TestNew_DefaultsBarWidth(t *testing.T) {
	out := New(0).StrengthBar(policy.Evaluate("Abcdefghijkl1", policy.DefaultConfig()))
	if got := strings.Count(out, "█"); got != defaultBarWidth {
		t.Fatalf("expected %d cells, got %d", defaultBarWidth, got)
	}
}

type fakeRenderer struct {
	inputs []string
	err    error
}

func (f *fakeRenderer) Render(s string) (string, error) {
	f.inputs = append(f.inputs, s)
	if f.err != nil {
		return "", f.err
	}
	return "R:" + s, nil
}

func TestRequirementsMarkdown_ListsPolicy(t *testing.T) {
	cfg, _ := policy.NewConfig(policy.WithMinLength(10), policy.WithSpecialChars(true), policy.WithSpecialCharSet("#!"))
	md := RequirementsMarkdown(cfg)

	for _, want := range []string{
		"- At least 10 characters",
		"- One special character (!@#$% etc.)",
		"`#!`",
		"| At least 14 characters | 1 |",
		"| Special character | 1 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q:\n%s", want, md)
		}
	}
}

func TestRequirementsMarkdown_HugeMinLength(t *testing.T) {
	cfg, err := policy.NewConfig(policy.WithMinLength(math.MaxInt))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	md := RequirementsMarkdown(cfg)
	if strings.Contains(md, "At least -") {
		t.Fatalf("length bonus row wrapped negative:\n%s", md)
	}
	if !strings.Contains(md, "+ 4 characters") {
		t.Fatalf("expected unwrapped bonus row:\n%s", md)
	}
}

func TestRequirementsMarkdown_NoSpecialRowWhenNotRequired(t *testing.T) {
	md := RequirementsMarkdown(policy.DefaultConfig())
	if strings.Contains(md, "Special character") {
		t.Fatalf("special row should be omitted:\n%s", md)
	}
}

func TestMarkdown_UsesRenderer(t *testing.T) {
	r := &fakeRenderer{}
	if got := Markdown("**x**", r); got != "R:**x**" {
		t.Fatalf("unexpected output %q", got)
	}
	if len(r.inputs) != 1 {
		t.Fatalf("expected 1 render, got %d", len(r.inputs))
	}
}

func TestMarkdown_FallsBackToRaw(t *testing.T) {
	if got := Markdown("**x**", &fakeRenderer{err: errors.New("boom")}); got != "**x**" {
		t.Fatalf("expected raw markdown, got %q", got)
	}
	if got := Markdown("**x**", nil); got != "**x**" {
		t.Fatalf("expected raw markdown, got %q", got)
	}
}
