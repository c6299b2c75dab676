// Package ui holds the Bubble Tea front end of the interactive shell.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lilt/internal/diag"
)

// EvalFunc compiles the accumulated program text and returns the
// emitted Python, or a rendered diagnostic.
type EvalFunc func(src string) (string, *diag.Diagnostic)

type replEntry struct {
	input  string
	output string
	failed bool
}

type replModel struct {
	eval    EvalFunc
	input   textinput.Model
	history []replEntry
	pending []string // open block lines waiting for a blank terminator
	program string   // accepted cells so far
	prevOut string   // emission of the accepted program
	width   int
	done    bool
}

// NewReplModel returns a Bubble Tea model for the read-eval loop. Every
// accepted cell re-compiles the whole buffer; the incremental session
// behind eval keeps that cheap.
func NewReplModel(eval EvalFunc) tea.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	return &replModel{
		eval:  eval,
		input: ti,
		width: 80,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = msg.Width - 4
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit either extends an open block or compiles a finished cell.
func (m *replModel) submit(line string) {
	if len(m.pending) > 0 {
		if strings.TrimSpace(line) == "" {
			cell := strings.Join(m.pending, "\n")
			m.pending = nil
			m.compile(cell)
			return
		}
		m.pending = append(m.pending, line)
		return
	}
	if strings.TrimSpace(line) == "" {
		return
	}
	if strings.HasSuffix(strings.TrimSpace(line), ":") {
		m.pending = []string{line}
		return
	}
	m.compile(line)
}

func (m *replModel) compile(cell string) {
	candidate := m.program + cell + "\n"
	out, d := m.eval(candidate)
	if d != nil {
		m.history = append(m.history, replEntry{input: cell, output: d.Rendered, failed: true})
		return
	}
	shown := out
	if strings.HasPrefix(out, m.prevOut) {
		shown = out[len(m.prevOut):]
	}
	m.program = candidate
	m.prevOut = out
	m.history = append(m.history, replEntry{input: cell, output: shown})
}

func (m *replModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	contStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	outStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("lilt repl (ctrl+d to quit)"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		for i, line := range strings.Split(e.input, "\n") {
			prompt := ">>"
			if i > 0 {
				prompt = ".."
			}
			fmt.Fprintf(&b, "%s %s\n", promptStyle.Render(prompt), line)
		}
		style := outStyle
		if e.failed {
			style = errStyle
		}
		for _, line := range strings.Split(strings.TrimRight(e.output, "\n"), "\n") {
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	if m.done {
		return b.String()
	}
	prompt := ">>"
	if len(m.pending) > 0 {
		prompt = ".."
		for i, line := range m.pending {
			p := ">>"
			if i > 0 {
				p = ".."
			}
			fmt.Fprintf(&b, "%s %s\n", contStyle.Render(p), line)
		}
	}
	fmt.Fprintf(&b, "%s %s", promptStyle.Render(prompt), m.input.View())
	return b.String()
}
