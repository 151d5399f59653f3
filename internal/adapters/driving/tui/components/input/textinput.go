// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
)

// PatternInput is the regular expression entry field.
type PatternInput struct {
	textinput  textinput.Model
	styles     *styles.Styles
	ignoreCase bool
	width      int
}

// NewPatternInput creates a focused pattern input.
func NewPatternInput(s *styles.Styles) *PatternInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = `regular expression, \n spans lines`
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &PatternInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (p *PatternInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PatternInput) Update(msg tea.Msg) (*PatternInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input with its case flag.
func (p *PatternInput) View() string {
	label := p.styles.Title.Render("Pattern: ")
	field := p.styles.InputField.Render(p.textinput.View())
	flag := p.styles.Muted.Render(" [Aa]")
	if p.ignoreCase {
		flag = p.styles.Success.Render(" [aa]")
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field, flag)
}

// Value returns the current pattern.
func (p *PatternInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the pattern.
func (p *PatternInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PatternInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PatternInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PatternInput) Focused() bool {
	return p.textinput.Focused()
}

// ToggleIgnoreCase flips case-insensitive matching.
func (p *PatternInput) ToggleIgnoreCase() {
	p.ignoreCase = !p.ignoreCase
}

// IgnoreCase reports whether case-insensitive matching is on.
func (p *PatternInput) IgnoreCase() bool {
	return p.ignoreCase
}

// SetWidth sets the width of the input.
func (p *PatternInput) SetWidth(width int) {
	p.width = width
	// Label, border and case flag
	inputWidth := width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PatternInput) Width() int {
	return p.width
}
