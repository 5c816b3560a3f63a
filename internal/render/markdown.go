package render

import (
	"fmt"
	"strings"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns markdown into terminal output.
type MarkdownRenderer interface {
	Render(string) (string, error)
}

// NewMarkdownRenderer returns a glamour renderer wrapped at width columns.
func NewMarkdownRenderer(width int) (MarkdownRenderer, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return r, nil
}

// RequirementsMarkdown describes the policy and how strength is scored.
func RequirementsMarkdown(cfg policy.Config) string {
	var b strings.Builder

	b.WriteString("# Password policy\n\n")
	b.WriteString("## " + RequirementsTitle + "\n\n")
	for _, req := range policy.Requirements(cfg) {
		fmt.Fprintf(&b, "- %s\n", req.Description)
	}
	if cfg.RequireSpecialChars {
		fmt.Fprintf(&b, "\nSpecial characters: `%s`\n", cfg.SpecialChars)
	}

	b.WriteString("\n## Strength\n\n")
	b.WriteString("| Signal | Points |\n|---|---|\n")
	fmt.Fprintf(&b, "| At least %d characters | 1 |\n", cfg.MinLength)
	if extra := cfg.MinLength + 4; extra > cfg.MinLength {
		fmt.Fprintf(&b, "| At least %d characters | 1 |\n", extra)
	} else {
		fmt.Fprintf(&b, "| At least %d + 4 characters | 1 |\n", cfg.MinLength)
	}
	b.WriteString("| Uppercase letter | 1 |\n")
	b.WriteString("| Lowercase letter | 1 |\n")
	b.WriteString("| Digit | 1 |\n")
	if cfg.RequireSpecialChars {
		b.WriteString("| Special character | 1 |\n")
	}
	b.WriteString("| At least 12 characters | 1 |\n")
	b.WriteString("| At least 16 characters | 1 |\n")

	fmt.Fprintf(&b, "\nScores are capped at %d. ", policy.MaxScore)
	b.WriteString("Below 25% is **Weak**, below 50% **Fair**, below 75% **Good**, otherwise **Strong**.\n")
	b.WriteString("\n> Feedback is advisory; the server that stores the password must enforce its own policy.\n")

	return b.String()
}

// Markdown renders md with r, falling back to the raw text on error.
func Markdown(md string, r MarkdownRenderer) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
