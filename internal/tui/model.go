package tui

import (
	"strings"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/MEKXH/passgauge/internal/render"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#8E4EC6")).
	Padding(0, 1)

type keyMap struct {
	Submit       key.Binding
	Quit         key.Binding
	Requirements key.Binding
	Reveal       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Requirements, k.Reveal, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Done"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc", "Quit"),
		),
		Requirements: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "Requirements"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "Reveal"),
		),
	}
}

// Options tune the live feedback view.
type Options struct {
	BarWidth         int
	ShowRequirements bool
}

// Model re-evaluates the password on every keystroke.
type Model struct {
	input     textinput.Model
	help      help.Model
	keys      keyMap
	evaluator policy.Evaluator
	renderer  *render.Renderer
	reqs      []policy.Requirement

	result           policy.Result
	showRequirements bool
	revealed         bool
	submitted        bool
	aborted          bool
}

// New builds a focused model for ev.
func New(ev policy.Evaluator, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "Password: "
	ti.Placeholder = "start typing"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()

	return Model{
		input:            ti,
		help:             help.New(),
		keys:             defaultKeyMap(),
		evaluator:        ev,
		renderer:         render.New(opts.BarWidth),
		reqs:             ev.Requirements(),
		result:           ev.Evaluate(""),
		showRequirements: opts.ShowRequirements,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			m.input.Reset()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			m.input.Reset()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Requirements):
			m.showRequirements = !m.showRequirements
			return m, nil
		case key.Matches(msg, m.keys.Reveal):
			m.revealed = !m.revealed
			if m.revealed {
				m.input.EchoMode = textinput.EchoNormal
			} else {
				m.input.EchoMode = textinput.EchoPassword
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.result = m.evaluator.Evaluate(m.input.Value())
	return m, cmd
}

func (m Model) View() string {
	if m.submitted || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("passgauge"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderer.Report(m.reqs, m.result, m.showRequirements))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Result is the evaluation of the most recent input.
func (m Model) Result() policy.Result {
	return m.result
}

// Submitted reports whether the user confirmed with Enter.
func (m Model) Submitted() bool {
	return m.submitted
}

// Aborted reports whether the user quit without confirming.
func (m Model) Aborted() bool {
	return m.aborted
}

// ShowingRequirements reports whether the requirement checklist is visible.
func (m Model) ShowingRequirements() bool {
	return m.showRequirements
}

// Run starts the program on the terminal and returns the final model.
func Run(ev policy.Evaluator, opts Options, programOpts ...tea.ProgramOption) (Model, error) {
	final, err := tea.NewProgram(New(ev, opts), programOpts...).Run()
	if err != nil {
		return Model{}, err
	}
	m, _ := final.(Model)
	return m, nil
}
