// Package ui provides the terminal quick-add preview.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"productivity-hub/pkg/datemath"
	"productivity-hub/pkg/directive"
)

// Result is what the user confirmed when the preview closed.
type Result struct {
	Input     string
	Parsed    directive.ParsedTask
	Submitted bool // false when the user cancelled
}

// RunQuickAdd opens the preview and blocks until the user submits or cancels.
func RunQuickAdd(ctx context.Context, clock *datemath.Calendar) (Result, error) {
	if !IsTTY(os.Stdout) {
		return Result{}, fmt.Errorf("interactive mode requires a TTY")
	}

	program := tea.NewProgram(NewQuickAddModel(clock), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	m, ok := finalModel.(*QuickAddModel)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return m.Result(), nil
}

// QuickAddModel re-parses the input line on every keystroke.
type QuickAddModel struct {
	clock     *datemath.Calendar
	input     []rune
	parsed    directive.ParsedTask
	submitted bool
	done      bool
}

func NewQuickAddModel(clock *datemath.Calendar) *QuickAddModel {
	return &QuickAddModel{clock: clock}
}

func (m *QuickAddModel) Init() tea.Cmd {
	return nil
}

func (m *QuickAddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.done = true
		return m, tea.Quit
	case tea.KeyEnter:
		if strings.TrimSpace(m.parsed.Title) == "" {
			return m, nil
		}
		m.submitted = true
		m.done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	default:
		return m, nil
	}

	m.parsed = directive.Parse(string(m.input), m.clock.Now())
	return m, nil
}

func (m *QuickAddModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	b.WriteString("> " + string(m.input))
	if !m.done {
		b.WriteString("_")
	}
	b.WriteString("\n\n")

	writePreview(&b, m.parsed)
	b.WriteString("\nEnter to add, Ctrl+U to clear, Esc to cancel\n")
	return b.String()
}

// Result reports the current input and its parse.
func (m *QuickAddModel) Result() Result {
	return Result{
		Input:     string(m.input),
		Parsed:    m.parsed,
		Submitted: m.submitted,
	}
}

func writeTitle(b *strings.Builder) {
	title := "Quick Add"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writePreview(b *strings.Builder, p directive.ParsedTask) {
	title := p.Title
	if title == "" {
		title = "(empty)"
	}
	priority := "-"
	if p.HasPriority() {
		priority = string(p.Priority)
	}
	due := "-"
	if p.HasDueDate() {
		due = p.DueDate.Format("Mon, Jan 2 2006")
	}

	fmt.Fprintf(b, "  Title:    %s\n", title)
	fmt.Fprintf(b, "  Priority: %s\n", priority)
	fmt.Fprintf(b, "  Due:      %s\n", due)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
