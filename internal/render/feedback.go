package render

import (
	"strings"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/charmbracelet/lipgloss"
)

const (
	RequirementsTitle = "Password must contain:"
	FeedbackValid     = "Password meets all requirements"
	FeedbackInvalid   = "Password does not meet all requirements"

	iconPassed  = "✓"
	iconPending = "•"

	defaultBarWidth = 30
)

var (
	validColor   = lipgloss.Color("#00b894")
	invalidColor = lipgloss.Color("#e74c3c")
	mutedColor   = lipgloss.Color("245")
	trackColor   = lipgloss.Color("240")

	tierColors = map[policy.Tier]lipgloss.Color{
		policy.TierWeak:   lipgloss.Color("#e74c3c"),
		policy.TierFair:   lipgloss.Color("#f39c12"),
		policy.TierGood:   lipgloss.Color("#3498db"),
		policy.TierStrong: lipgloss.Color("#00b894"),
	}

	// Bar fill follows the tier, not the raw score.
	tierFill = map[policy.Tier]int{
		policy.TierWeak:   25,
		policy.TierFair:   50,
		policy.TierGood:   75,
		policy.TierStrong: 100,
	}
)

// Renderer draws evaluation results for a terminal.
type Renderer struct {
	barWidth int

	titleStyle   lipgloss.Style
	validStyle   lipgloss.Style
	invalidStyle lipgloss.Style
	mutedStyle   lipgloss.Style
	trackStyle   lipgloss.Style
}

// New returns a Renderer whose strength bar is barWidth cells wide.
func New(barWidth int) *Renderer {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	return &Renderer{
		barWidth:     barWidth,
		titleStyle:   lipgloss.NewStyle().Bold(true),
		validStyle:   lipgloss.NewStyle().Foreground(validColor),
		invalidStyle: lipgloss.NewStyle().Foreground(invalidColor),
		mutedStyle:   lipgloss.NewStyle().Foreground(mutedColor),
		trackStyle:   lipgloss.NewStyle().Foreground(trackColor),
	}
}

// Checklist renders the requirement list with a pass/pending icon per line.
// Lines stay muted until something has been typed.
func (r *Renderer) Checklist(reqs []policy.Requirement, res policy.Result) string {
	lines := make([]string, 0, len(reqs)+1)
	lines = append(lines, r.titleStyle.Render(RequirementsTitle))
	for _, req := range reqs {
		passed := res.Rules[req.Rule]
		icon := iconPending
		if passed {
			icon = iconPassed
		}
		style := r.invalidStyle
		switch {
		case res.Length == 0:
			style = r.mutedStyle
		case passed:
			style = r.validStyle
		}
		lines = append(lines, style.Render("  "+icon+" "+req.Description))
	}
	return strings.Join(lines, "\n")
}

// Feedback renders the one-line verdict, or "" for an empty password.
func (r *Renderer) Feedback(res policy.Result) string {
	if res.Length == 0 {
		return ""
	}
	if res.Valid {
		return r.validStyle.Render(FeedbackValid)
	}
	return r.invalidStyle.Render(FeedbackInvalid)
}

// StrengthBar renders the tier-colored bar with its label underneath,
// or "" for an empty password.
func (r *Renderer) StrengthBar(res policy.Result) string {
	if res.Length == 0 {
		return ""
	}
	filled := r.barWidth * tierFill[res.Tier] / 100
	barStyle := lipgloss.NewStyle().Foreground(tierColors[res.Tier])

	bar := barStyle.Render(strings.Repeat("█", filled)) +
		r.trackStyle.Render(strings.Repeat("░", r.barWidth-filled))
	label := lipgloss.NewStyle().
		Width(r.barWidth).
		Align(lipgloss.Right).
		Foreground(tierColors[res.Tier]).
		Render(res.Tier.Label())

	return bar + "\n" + label
}

// Report stacks checklist, feedback and bar, skipping empty parts.
func (r *Renderer) Report(reqs []policy.Requirement, res policy.Result, showRequirements bool) string {
	var parts []string
	if showRequirements {
		parts = append(parts, r.Checklist(reqs, res))
	}
	if fb := r.Feedback(res); fb != "" {
		parts = append(parts, fb)
	}
	if bar := r.StrengthBar(res); bar != "" {
		parts = append(parts, bar)
	}
	return strings.Join(parts, "\n\n")
}
