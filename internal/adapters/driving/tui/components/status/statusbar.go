// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
)

// State represents the current search state for display.
type State string

const (
	StateReady      State = "ready"
	StateSearching  State = "searching"
	StateCancelled  State = "cancelled"
	StateTerminated State = "terminated"
	StateDone       State = "done"
	StateError      State = "error"
)

// Bar displays search progress and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	spinner    spinner.Model
	state      State
	message    string
	current    string
	matchCount int
	failures   int
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Subtitle

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateReady,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while searching.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && s.state == StateSearching {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state and counters.
func (s *Bar) renderLeft() string {
	counts := fmt.Sprintf("%d matches", s.matchCount)
	if s.failures > 0 {
		counts += s.styles.Warning.Render(fmt.Sprintf(", %d skipped", s.failures))
	}

	switch s.state {
	case StateSearching:
		current := "Searching..."
		if s.current != "" {
			current = fmt.Sprintf("Searching %s...", s.current)
		}
		return s.spinner.View() + " " + s.styles.Normal.Render(current) + "  " + s.styles.Muted.Render(counts)
	case StateCancelled:
		return s.styles.Warning.Render("Stopped") + "  " + s.styles.Muted.Render(counts)
	case StateTerminated:
		msg := "Search aborted"
		if s.message != "" {
			msg += ": " + s.message
		}
		return s.styles.Warning.Render(msg) + "  " + s.styles.Muted.Render(counts)
	case StateDone:
		return s.styles.Success.Render("Done") + "  " + s.styles.Normal.Render(counts)
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateReady:
	}
	if s.message != "" {
		return s.styles.Muted.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.state == StateSearching:
		bindings = s.keymap.SearchingHelp()
	case s.matchCount > 0:
		bindings = s.keymap.ResultsHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// StartSearching switches to the searching state and starts the spinner.
func (s *Bar) StartSearching() tea.Cmd {
	s.state = StateSearching
	s.message = ""
	s.current = ""
	s.matchCount = 0
	s.failures = 0
	return s.spinner.Tick
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCurrent sets the name of the document being searched.
func (s *Bar) SetCurrent(name string) {
	s.current = name
}

// Current returns the name of the document being searched.
func (s *Bar) Current() string {
	return s.current
}

// SetMatchCount sets the match count.
func (s *Bar) SetMatchCount(count int) {
	s.matchCount = count
}

// MatchCount returns the match count.
func (s *Bar) MatchCount() int {
	return s.matchCount
}

// AddFailure counts a document that could not be searched.
func (s *Bar) AddFailure() {
	s.failures++
}

// Failures returns the number of documents that could not be searched.
func (s *Bar) Failures() int {
	return s.failures
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.current = ""
	s.matchCount = 0
	s.failures = 0
}
